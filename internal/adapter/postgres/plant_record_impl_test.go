package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/repository"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	execs   []execCall
	execErr error
	row     pgx.Row
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestPlantRecordRepo_Save(t *testing.T) {
	db := &fakeDB{}
	repo := NewPlantRecordRepo(db)
	scrapedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	record := &entity.PlantRecord{
		PlantName:  "Curcuma longa",
		CommonName: "Turmeric",
		Phytochemicals: []entity.Phytochemical{
			{Identifier: "IMPHY004141", Name: "Curcumin"},
			{Identifier: "IMPHY004141", Name: "Curcumin", PlantPart: "Leaf"},
			{Identifier: "IMPHY011995", Name: "ar-Turmerone"},
		},
		ScrapedAt: scrapedAt,
	}
	require.NoError(t, repo.Save(context.Background(), record))

	require.Len(t, db.execs, 1)
	args := db.execs[0].args
	require.Equal(t, "Curcuma longa", args[0])
	require.Equal(t, 2, args[2], "distinct phytochemicals")
	require.Equal(t, scrapedAt, args[3])

	var stored map[string]any
	require.NoError(t, json.Unmarshal(args[1].([]byte), &stored))
	require.Equal(t, "Turmeric", stored["common_name"])
	require.NotContains(t, stored, "ScrapedAt")
}

func TestPlantRecordRepo_SaveError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection refused")}
	err := NewPlantRecordRepo(db).Save(context.Background(), &entity.PlantRecord{PlantName: "Curcuma longa"})
	require.ErrorContains(t, err, "connection refused")
}

func TestPlantRecordRepo_FindByName(t *testing.T) {
	scrapedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	data := []byte(`{"plant_name":"Curcuma longa","common_name":"Turmeric","synonymous_names":"","system_of_medicine":"Ayurveda","phytochemicals":[]}`)
	db := &fakeDB{row: fakeRow{values: []any{data, scrapedAt}}}

	record, err := NewPlantRecordRepo(db).FindByName(context.Background(), "Curcuma longa")
	require.NoError(t, err)
	require.Equal(t, "Turmeric", record.CommonName)
	require.Equal(t, "Ayurveda", record.SystemOfMedicine)
	require.Equal(t, scrapedAt, record.ScrapedAt)
}

func TestPlantRecordRepo_FindByNameNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := NewPlantRecordRepo(db).FindByName(context.Background(), "Nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFailedPageRepo_SaveOrUpdate(t *testing.T) {
	db := &fakeDB{}
	repo := NewFailedPageRepo(db)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := repo.SaveOrUpdate(context.Background(), &entity.FailedPage{
		URL:           "https://cb.imsc.res.in/imppat/admetproperties/IMPHY004141",
		PageType:      entity.PageADMET,
		PlantName:     "Curcuma longa",
		FailureReason: "unexpected status 503",
		LastAttempt:   at,
	})
	require.NoError(t, err)
	require.Equal(t, []any{
		"https://cb.imsc.res.in/imppat/admetproperties/IMPHY004141",
		"admet",
		"Curcuma longa",
		"unexpected status 503",
		at,
	}, db.execs[0].args)

	require.NoError(t, repo.Delete(context.Background(), "https://cb.imsc.res.in/imppat/admetproperties/IMPHY004141"))
	require.Contains(t, db.execs[1].sql, "DELETE FROM failed_pages")
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.Contains(t, db.execs[0].sql, "CREATE TABLE IF NOT EXISTS plant_records")
	require.Contains(t, db.execs[0].sql, "CREATE TABLE IF NOT EXISTS failed_pages")
}
