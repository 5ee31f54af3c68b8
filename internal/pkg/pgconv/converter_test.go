//go:build unit

package pgconv_test

import (
	"database/sql"
	"testing"
	"time"

	"scooter-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, pgconv.UUIDFromPgtype(pgconv.UUIDToPgtype(id)))
	assert.Equal(t, uuid.Nil, pgconv.UUIDFromPgtype(pgtype.UUID{}))
}

func TestTimePtr(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	local := time.Date(2025, 1, 1, 21, 0, 0, 0, jst)

	got := pgconv.TimePtrFromPgtype(pgconv.TimeToPgtype(local))
	require.NotNil(t, got)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, local.Equal(*got))

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
}

func TestStringPtr(t *testing.T) {
	s := "failed"
	assert.Equal(t, &s, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}
