// Package sqlcheck parses generated postgres SQL with the PostgreSQL parser.
package sqlcheck

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/dataarchitect/architect/internal/generate"
)

// Check parses sql and returns the parser error, if any
func Check(sql string) error {
	_, err := pg_query.Parse(sql)
	return err
}

// StatementKind parses sql, which must hold exactly one statement, and
// reports what it is: "create table", "insert", "merge" or "other".
func StatementKind(sql string) (string, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return "", err
	}
	if len(result.Stmts) != 1 {
		return "", fmt.Errorf("expected 1 statement, found %d", len(result.Stmts))
	}

	stmt := result.Stmts[0].Stmt
	switch {
	case stmt.GetCreateStmt() != nil:
		return "create table", nil
	case stmt.GetInsertStmt() != nil:
		return "insert", nil
	case stmt.GetMergeStmt() != nil:
		return "merge", nil
	default:
		return "other", nil
	}
}

// CheckArtifact parses the artifact SQL and verifies that DDL artifacts
// create a table and DML artifacts load one.
func CheckArtifact(a *generate.Artifact) error {
	kind, err := StatementKind(a.SQL)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	switch a.Kind {
	case generate.KindDDL:
		if kind != "create table" {
			return fmt.Errorf("%s: expected CREATE TABLE, found %s", a.Name, kind)
		}
	case generate.KindDML:
		if kind != "insert" && kind != "merge" {
			return fmt.Errorf("%s: expected INSERT or MERGE, found %s", a.Name, kind)
		}
	}
	return nil
}

// CheckOutput checks every artifact of out and returns the first failure
func CheckOutput(out *generate.Output) error {
	for _, a := range out.Artifacts() {
		if err := CheckArtifact(a); err != nil {
			return err
		}
	}
	return nil
}
