package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	"whereabouts/backend/internal/testutil"
)

func seedVendor(t *testing.T, repo *repository.Repository, ownerID, name string) *model.Vendor {
	t.Helper()
	v := &model.Vendor{Name: name, OwnerID: ownerID}
	require.NoError(t, repo.Vendor.Create(context.Background(), v))
	return v
}

func seedSchedule(t *testing.T, repo *repository.Repository, vendorID string, start, end time.Time) *model.VendorSchedule {
	t.Helper()
	s := &model.VendorSchedule{
		VendorID:  vendorID,
		StartDate: datatypes.Date(start),
		EndDate:   datatypes.Date(end),
		StartTime: datatypes.NewTime(9, 0, 0, 0),
		EndTime:   datatypes.NewTime(17, 0, 0, 0),
	}
	require.NoError(t, repo.Schedule.Create(context.Background(), s))
	return s
}

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []foreignKey {
	t.Helper()
	var fks []foreignKey
	require.NoError(t, db.Raw("SELECT * FROM pragma_foreign_key_list(?)", table).Scan(&fks).Error)
	return fks
}

func TestSchema_ForeignKeysPointAtParents(t *testing.T) {
	db := testutil.NewDB(t)

	assert.Empty(t, foreignKeys(t, db, "owners"), "owners 不应引用其他表")

	vendorFKs := foreignKeys(t, db, "vendors")
	require.Len(t, vendorFKs, 1)
	assert.Equal(t, foreignKey{Table: "owners", From: "owner_id", To: "owner_id", OnDelete: "NO ACTION"}, vendorFKs[0])

	scheduleFKs := foreignKeys(t, db, "vendor_schedules")
	require.Len(t, scheduleFKs, 1)
	assert.Equal(t, foreignKey{Table: "vendors", From: "vendor_id", To: "vendor_id", OnDelete: "CASCADE"}, scheduleFKs[0])
}

func TestSchema_RejectsOrphans(t *testing.T) {
	repo := repository.NewRepository(testutil.NewDB(t))
	ctx := context.Background()

	err := repo.Vendor.Create(ctx, &model.Vendor{Name: "Orphan", OwnerID: "7b0d1c7e-3f7a-4c1e-9a53-2f7c1d9e0a11"})
	assert.Error(t, err, "不存在的 owner_id 应被外键拒绝")
}

func TestVendorRepo_CreateAndLookup(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "alice@example.com")

	v := seedVendor(t, repo, owner.OwnerID, "Taco Cart")
	assert.NotEmpty(t, v.VendorID)

	found, err := repo.Vendor.GetByNameAndOwner(ctx, "Taco Cart", owner.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, v.VendorID, found.VendorID)

	_, err = repo.Vendor.GetByNameAndOwner(ctx, "Taco Cart", "someone-else")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVendorRepo_DuplicateNameIsTranslated(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	a := testutil.SeedOwner(t, db, "sub-a", "A", "")
	b := testutil.SeedOwner(t, db, "sub-b", "B", "")

	seedVendor(t, repo, a.OwnerID, "Taco Cart")
	err := repo.Vendor.Create(context.Background(), &model.Vendor{Name: "Taco Cart", OwnerID: b.OwnerID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestVendorRepo_UpdateKeepsOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")
	v := seedVendor(t, repo, owner.OwnerID, "Old")

	link := "https://example.com"
	v.Name = "New"
	v.Link = &link
	v.OwnerID = "tampered"
	require.NoError(t, repo.Vendor.Update(ctx, v))

	got, err := repo.Vendor.GetByID(ctx, v.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	require.NotNil(t, got.Link)
	assert.Equal(t, link, *got.Link)
	assert.Equal(t, owner.OwnerID, got.OwnerID)
}

func TestScheduleRepo_ListActiveInclusiveRange(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "alice@example.com")
	v := seedVendor(t, repo, owner.OwnerID, "Taco Cart")
	seedSchedule(t, repo, v.VendorID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))

	cases := []struct {
		day  time.Time
		want int
	}{
		{testutil.Date(2024, 5, 31), 0},
		{testutil.Date(2024, 6, 1), 1},
		{testutil.Date(2024, 6, 2), 1},
		{testutil.Date(2024, 6, 3), 1},
		{testutil.Date(2024, 6, 4), 0},
	}
	for _, c := range cases {
		day := c.day
		rows, err := repo.Schedule.ListActive(ctx, &day)
		require.NoError(t, err)
		assert.Len(t, rows, c.want, "date=%s", day.Format("2006-01-02"))
	}

	all, err := repo.Schedule.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Vendor)
	require.NotNil(t, all[0].Vendor.Owner)
	assert.Equal(t, "Alice", all[0].Vendor.Owner.DisplayName)
}

func TestScheduleRepo_GetByIDForVendor(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")
	v1 := seedVendor(t, repo, owner.OwnerID, "One")
	v2 := seedVendor(t, repo, owner.OwnerID, "Two")
	s := seedSchedule(t, repo, v1.VendorID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 1))

	_, err := repo.Schedule.GetByIDForVendor(ctx, v1.VendorID, s.ScheduleID)
	assert.NoError(t, err)

	_, err = repo.Schedule.GetByIDForVendor(ctx, v2.VendorID, s.ScheduleID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestScheduleRepo_UpdateRewritesWindowAndGeo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")
	v := seedVendor(t, repo, owner.OwnerID, "Cart")
	s := seedSchedule(t, repo, v.VendorID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 1))

	lat, lon, addr := 1.5, 2.5, "Pier 39"
	s.Latitude, s.Longitude, s.Address = &lat, &lon, &addr
	s.EndTime = datatypes.NewTime(18, 30, 0, 0)
	require.NoError(t, repo.Schedule.Update(ctx, s))

	got, err := repo.Schedule.GetByID(ctx, s.ScheduleID)
	require.NoError(t, err)
	assert.Equal(t, "18:30:00", got.EndTime.String())
	require.NotNil(t, got.Address)
	assert.Equal(t, "Pier 39", *got.Address)
	assert.InDelta(t, 1.5, *got.Latitude, 1e-9)
}

func TestScheduleRepo_DeleteReportsRows(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")
	v := seedVendor(t, repo, owner.OwnerID, "Cart")
	s := seedSchedule(t, repo, v.VendorID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 1))

	n, err := repo.Schedule.Delete(ctx, s.ScheduleID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.Schedule.Delete(ctx, s.ScheduleID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestRepository_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Vendor.Create(ctx, &model.Vendor{Name: "Ghost", OwnerID: owner.OwnerID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	vendors, err := repo.Vendor.ListByOwner(ctx, owner.OwnerID)
	require.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestRepository_BeginTxCommit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	owner := testutil.SeedOwner(t, db, "sub-1", "Alice", "")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	txRepo := repo.WithTx(tx)
	v := &model.Vendor{Name: "Kept", OwnerID: owner.OwnerID}
	require.NoError(t, txRepo.Vendor.Create(ctx, v))
	require.NoError(t, tx.Commit().Error)

	got, err := repo.Vendor.GetByID(ctx, v.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Name)
}
