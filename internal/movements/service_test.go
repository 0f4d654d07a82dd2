package movements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupMovementsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE components (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  quantity INTEGER NOT NULL DEFAULT 0,
  category_id INTEGER,
  location_id INTEGER,
  status TEXT,
  image_url TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE movements (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  component_id INTEGER NOT NULL REFERENCES components(id),
  kind TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  actor TEXT NOT NULL,
  notes TEXT,
  occurred_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestLedger(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupMovementsTestDB(t)
	svc, err := NewService(NewRepository(conn), gormTxRunner{db: conn})
	require.NoError(t, err)
	return svc, conn
}

func seedComponent(t *testing.T, conn *gorm.DB, name string, quantity int) int {
	t.Helper()
	component := models.Component{Name: name, Quantity: quantity}
	require.NoError(t, conn.Create(&component).Error)
	return component.ID
}

func componentQuantity(t *testing.T, conn *gorm.DB, id int) int {
	t.Helper()
	var component models.Component
	require.NoError(t, conn.First(&component, "id = ?", id).Error)
	return component.Quantity
}

func TestAppendAdjustsCachedQuantity(t *testing.T) {
	svc, conn := newTestLedger(t)
	ctx := context.Background()
	id := seedComponent(t, conn, "Servo", 10)

	cases := []struct {
		kind string
		qty  int
		want int
	}{
		{"intake", 5, 15},
		{"outflow", 3, 12},
		{"loan", 2, 10},
		{"return", 2, 12},
	}
	for _, tc := range cases {
		err := svc.Append(ctx, AppendInput{
			ComponentID: id,
			Kind:        tc.kind,
			Quantity:    tc.qty,
			Actor:       "Ana",
		})
		require.NoError(t, err, tc.kind)
		assert.Equal(t, tc.want, componentQuantity(t, conn, id), tc.kind)
	}

	var count int64
	require.NoError(t, conn.Model(&models.Movement{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestAppendAllowsNegativeQuantity(t *testing.T) {
	svc, conn := newTestLedger(t)
	ctx := context.Background()
	id := seedComponent(t, conn, "Resistencia", 1)

	err := svc.Append(ctx, AppendInput{ComponentID: id, Kind: "outflow", Quantity: 5, Actor: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, -4, componentQuantity(t, conn, id))
}

func TestAppendRejectsUnknownKind(t *testing.T) {
	svc, conn := newTestLedger(t)
	ctx := context.Background()
	id := seedComponent(t, conn, "Servo", 10)

	for _, kind := range []string{"", "ingreso", "borrow"} {
		err := svc.Append(ctx, AppendInput{ComponentID: id, Kind: kind, Quantity: 1, Actor: "Ana"})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, kind)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code(), kind)
	}

	// nothing was written
	var count int64
	require.NoError(t, conn.Model(&models.Movement{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 10, componentQuantity(t, conn, id))
}

func TestAppendRejectsMissingComponent(t *testing.T) {
	svc, _ := newTestLedger(t)

	err := svc.Append(context.Background(), AppendInput{ComponentID: 999, Kind: "intake", Quantity: 1, Actor: "Ana"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAppendValidatesInput(t *testing.T) {
	svc, conn := newTestLedger(t)
	ctx := context.Background()
	id := seedComponent(t, conn, "Servo", 10)

	err := svc.Append(ctx, AppendInput{ComponentID: id, Kind: "intake", Quantity: 0, Actor: "Ana"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	err = svc.Append(ctx, AppendInput{ComponentID: id, Kind: "intake", Quantity: 1, Actor: "   "})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListNewestFirstWithActorFilter(t *testing.T) {
	svc, conn := newTestLedger(t)
	ctx := context.Background()
	id := seedComponent(t, conn, "Servo", 10)

	require.NoError(t, svc.Append(ctx, AppendInput{ComponentID: id, Kind: "intake", Quantity: 5, Actor: "Ana"}))
	require.NoError(t, svc.Append(ctx, AppendInput{ComponentID: id, Kind: "loan", Quantity: 2, Actor: "Bruno"}))
	require.NoError(t, svc.Append(ctx, AppendInput{ComponentID: id, Kind: "return", Quantity: 2, Actor: "Bruno"}))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "return", all[0].Kind)
	assert.Equal(t, "intake", all[2].Kind)
	assert.Equal(t, "Servo", all[0].ComponentName)

	filtered, err := svc.List(ctx, "bru")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	none, err := svc.List(ctx, "carla")
	require.NoError(t, err)
	assert.Empty(t, none)
}
