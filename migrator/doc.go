// Package migrator provides functionality to manage database schema migrations.
//
// Features:
// - Supports both forward (`up`) and rollback (`down`) migrations
// - Loads SQL migration files from a filesystem with structured naming (`{version}-{name}.{up|down}.sql`)
// - Tracks applied versions in a dedicated database table
// - Computes and executes migration plans to reach a target version
// - Resolves symbolic ("latest", "prev", "next") and relative ("+2", "-1") version references
package migrator
