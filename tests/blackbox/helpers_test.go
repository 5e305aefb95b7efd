//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writeConfig writes a YAML config with a SQLite journal and store under dir.
func writeConfig(t *testing.T, dir, steps string) (cfgPath, journalPath, savePath string) {
	t.Helper()

	journalPath = filepath.Join(dir, "journal.sqlite")
	savePath = filepath.Join(dir, "save.sqlite")
	cfgPath = filepath.Join(dir, "careerloans.yaml")

	doc := fmt.Sprintf(`simulation:
  start_funds: 250000
  start_reputation: 1000
  steps:
%s
journal:
  type: sqlite
  db_path: %s
store:
  type: sqlite
  path: %s
`, steps, journalPath, savePath)

	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, journalPath, savePath
}
