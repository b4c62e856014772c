package repository_test

import (
	"testing"
	"time"

	"github.com/gridwatch/backend/internal/db/models"
	"github.com/gridwatch/backend/internal/db/repository"
	testutils "github.com/gridwatch/backend/tests/utils"
	"github.com/stretchr/testify/assert"
)

func seedFaults(ts *testutils.TestSetup, repo repository.FaultRepository, timestamps []time.Time) {
	for _, timestamp := range timestamps {
		fault := &models.FaultEvent{
			ControlMAC:             "AA:BB:CC:DD:EE:FF",
			WifiMAC:                "11:22:33:44:55:66",
			Timestamp:              timestamp,
			CurrentActive:          true,
			CurrentDurationSeconds: 5,
		}
		ts.Requires.NoError(repo.Create(fault))
	}
}

func TestFaultRepository_ListOrdering(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()

	ts.SetupTestDatabase(&models.FaultEvent{})

	repo := repository.NewFaultRepository(ts.DB.DB)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedFaults(ts, repo, []time.Time{
		base,
		base.Add(2 * time.Hour),
		base.Add(1 * time.Hour),
	})

	faults, total, err := repo.List(0, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, faults, 3)

	// Most recent first
	assert.Equal(t, base.Add(2*time.Hour).Unix(), faults[0].Timestamp.Unix())
	assert.Equal(t, base.Add(1*time.Hour).Unix(), faults[1].Timestamp.Unix())
	assert.Equal(t, base.Unix(), faults[2].Timestamp.Unix())
}

func TestFaultRepository_ListTimestampCollision(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()

	ts.SetupTestDatabase(&models.FaultEvent{})

	repo := repository.NewFaultRepository(ts.DB.DB)

	collision := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedFaults(ts, repo, []time.Time{collision, collision, collision})

	faults, _, err := repo.List(0, 10)
	assert.NoError(t, err)
	assert.Len(t, faults, 3)

	// The sequence id breaks timestamp ties, newest insert first
	assert.Greater(t, faults[0].ID, faults[1].ID)
	assert.Greater(t, faults[1].ID, faults[2].ID)
}

func TestFaultRepository_ListWindows(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()

	ts.SetupTestDatabase(&models.FaultEvent{})

	repo := repository.NewFaultRepository(ts.DB.DB)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, 5)
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Minute)
	}
	seedFaults(ts, repo, timestamps)

	// Concatenating all pages reproduces the full descending set
	var seen []uint
	for offset := 0; offset < 5; offset += 2 {
		faults, total, err := repo.List(offset, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.LessOrEqual(t, len(faults), 2)
		for _, fault := range faults {
			seen = append(seen, fault.ID)
		}
	}

	assert.Len(t, seen, 5)
	unique := make(map[uint]struct{}, len(seen))
	for _, id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, 5)
}

func TestFaultRepository_Count(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()

	ts.SetupTestDatabase(&models.FaultEvent{})

	repo := repository.NewFaultRepository(ts.DB.DB)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	seedFaults(ts, repo, []time.Time{time.Now().UTC(), time.Now().UTC()})

	count, err = repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
