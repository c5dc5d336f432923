package db

import (
	"testing"

	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/stretchr/testify/assert"
)

func TestDBImplementsRepository(t *testing.T) {
	var _ roster.Repository = (*DB)(nil)
	var _ letters.RunStore = (*DB)(nil)
}

func TestSchemaDefinesTables(t *testing.T) {
	for _, table := range []string{"employees", "invited", "generation_runs", "generation_artifacts"} {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestCloseWithoutPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
