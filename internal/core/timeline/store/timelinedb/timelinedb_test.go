package timelinedb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func generateMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}
	return db, mock, nil
}

func TestSnapshotLoadEmpty(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	snapDB := NewDB(db)

	mock.ExpectQuery(`SELECT \* FROM "timeline_snapshots" WHERE project_id=\$1 (.+) LIMIT \$2`).
		WithArgs("p1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "tracks", "updated_at"}))

	tracks, err := snapDB.Load(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected empty timeline, got %d tracks", len(tracks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}

func TestSnapshotLoad(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	snapDB := NewDB(db)

	payload := `[{"id":"t1","kind":"video","order":0,"locked":false,"visible":true,"clips":[]}]`
	rows := sqlmock.NewRows([]string{"project_id", "tracks"}).AddRow("p1", []byte(payload))
	mock.ExpectQuery(`SELECT \* FROM "timeline_snapshots" WHERE project_id=\$1 (.+) LIMIT \$2`).
		WithArgs("p1", 1).
		WillReturnRows(rows)

	tracks, err := snapDB.Load(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].ID != "t1" {
		t.Fatalf("unexpected tracks %+v", tracks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}
