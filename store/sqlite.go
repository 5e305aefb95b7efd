package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER,
	position INTEGER NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS node_values (
	node_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (node_id, position)
);
`

// SQLite keeps the tree as rows of nodes and values. Every save rewrites
// the whole tree inside one transaction.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, root *Node) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM node_values`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return err
	}

	nextID := int64(0)
	var insert func(n *Node, parent sql.NullInt64, pos int) error
	insert = func(n *Node, parent sql.NullInt64, pos int) error {
		nextID++
		nodeID := nextID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (id, parent_id, position, name) VALUES (?, ?, ?, ?)`,
			nodeID, parent, pos, n.Name); err != nil {
			return fmt.Errorf("insert node %s: %w", n.Name, err)
		}
		for i, v := range n.Values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO node_values (node_id, position, name, value) VALUES (?, ?, ?, ?)`,
				nodeID, i, v.Name, v.Value); err != nil {
				return fmt.Errorf("insert value %s.%s: %w", n.Name, v.Name, err)
			}
		}
		for i, c := range n.Nodes {
			if err := insert(c, sql.NullInt64{Int64: nodeID, Valid: true}, i); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insert(root, sql.NullInt64{}, 0); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Load(ctx context.Context) (*Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, name
		FROM nodes
		ORDER BY parent_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*Node)
	var root *Node
	type edge struct {
		parent int64
		child  *Node
	}
	var edges []edge

	for rows.Next() {
		var (
			id     int64
			parent sql.NullInt64
			name   string
		)
		if err := rows.Scan(&id, &parent, &name); err != nil {
			return nil, err
		}
		n := NewNode(name)
		byID[id] = n
		if !parent.Valid {
			root = n
			continue
		}
		edges = append(edges, edge{parent.Int64, n})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNotFound
	}

	// edges are already in (parent, position) order
	for _, e := range edges {
		p, ok := byID[e.parent]
		if !ok {
			return nil, fmt.Errorf("node %s has missing parent %d", e.child.Name, e.parent)
		}
		p.Nodes = append(p.Nodes, e.child)
	}

	vrows, err := s.db.QueryContext(ctx, `
		SELECT node_id, name, value
		FROM node_values
		ORDER BY node_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	for vrows.Next() {
		var (
			nodeID      int64
			name, value string
		)
		if err := vrows.Scan(&nodeID, &name, &value); err != nil {
			return nil, err
		}
		if n, ok := byID[nodeID]; ok {
			n.AddValue(name, value)
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	return root, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
