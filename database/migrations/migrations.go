// Package migrations holds the schema history. Importing it registers every
// migration with pkg/migration.
package migrations
