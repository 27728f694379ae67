package karma

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// writeKarma inserts a ledger row aged the given duration before now. GORM
// keeps the explicit CreatedAt because it is non-zero.
func writeKarma(t *testing.T, db *gorm.DB, userID, amount int, age time.Duration) {
	t.Helper()
	txn := models.KarmaTransaction{
		UserID:    userID,
		Amount:    amount,
		Reason:    models.ReasonPostLike,
		SourceID:  1,
		CreatedAt: time.Now().UTC().Add(-age),
	}
	require.NoError(t, db.Create(&txn).Error)
}

func TestTopEarnersWindowing(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	userA := createUser(t, db, "alice")
	userB := createUser(t, db, "bob")
	userC := createUser(t, db, "carol")

	// A: five +5 inside the window -> 25.
	for hour := 0; hour < 5; hour++ {
		writeKarma(t, db, userA.ID, 5, time.Duration(hour)*time.Hour)
	}
	// B: three +5 plus fifteen +1 inside the window -> 30.
	for hour := 1; hour <= 3; hour++ {
		writeKarma(t, db, userB.ID, 5, time.Duration(hour)*time.Hour)
	}
	for i := 0; i < 15; i++ {
		writeKarma(t, db, userB.ID, 1, time.Duration(5+i%18)*time.Hour)
	}
	// C: two +5 inside the window -> 10; ten +5 beyond 30 hours are ignored.
	writeKarma(t, db, userC.ID, 5, 2*time.Hour)
	writeKarma(t, db, userC.ID, 5, 6*time.Hour)
	for i := 0; i < 10; i++ {
		writeKarma(t, db, userC.ID, 5, time.Duration(30+i)*time.Hour)
	}

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, userB.ID, entries[0].User.ID)
	require.EqualValues(t, 30, entries[0].Karma)
	require.Equal(t, 1, entries[0].Rank)

	require.Equal(t, userA.ID, entries[1].User.ID)
	require.EqualValues(t, 25, entries[1].Karma)
	require.Equal(t, 2, entries[1].Rank)

	require.Equal(t, userC.ID, entries[2].User.ID)
	require.EqualValues(t, 10, entries[2].Karma)
	require.Equal(t, 3, entries[2].Rank)
}

func TestTopEarnersExcludesNonPositiveSums(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	positive := createUser(t, db, "positive")
	negative := createUser(t, db, "negative")
	netZero := createUser(t, db, "netzero")

	writeKarma(t, db, positive.ID, 5, time.Hour)
	writeKarma(t, db, negative.ID, -3, time.Hour)
	writeKarma(t, db, netZero.ID, 2, time.Hour)
	writeKarma(t, db, netZero.ID, -2, 2*time.Hour)

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, positive.ID, entries[0].User.ID)
}

func TestTopEarnersCapsAtLimit(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	for i := 0; i < 8; i++ {
		user := createUser(t, db, fmt.Sprintf("earner%d", i))
		writeKarma(t, db, user.ID, (i+1)*5, time.Hour)
	}

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, entries, DefaultLimit)

	// Descending karma, dense ranks 1..5.
	for i, entry := range entries {
		require.Equal(t, i+1, entry.Rank)
		if i > 0 {
			require.LessOrEqual(t, entry.Karma, entries[i-1].Karma)
		}
	}
	require.EqualValues(t, 40, entries[0].Karma)
}

func TestTopEarnersTieBreaksByUserID(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	first := createUser(t, db, "first")
	second := createUser(t, db, "second")

	writeKarma(t, db, second.ID, 10, time.Hour)
	writeKarma(t, db, first.ID, 10, 2*time.Hour)

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, first.ID, entries[0].User.ID)
	require.Equal(t, second.ID, entries[1].User.ID)
}

func TestTopEarnersIgnoresCachedTotalKarma(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	// Decoy with an enormous cached total but nothing in the ledger window.
	decoy := createUser(t, db, "decoy")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", decoy.ID).
		UpdateColumn("total_karma", 999999).Error)
	writeKarma(t, db, decoy.ID, 50, 40*time.Hour)

	earner := createUser(t, db, "earner")
	writeKarma(t, db, earner.ID, 1, time.Hour)

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, earner.ID, entries[0].User.ID)
	require.EqualValues(t, 1, entries[0].Karma)
}

func TestTopEarnersEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	agg := NewAggregator(db)

	entries, err := agg.TopEarners(context.Background(), DefaultWindow, DefaultLimit)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
