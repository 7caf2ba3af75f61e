package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/K1ssSh0t/url-shortener/models"
)

type SQLStoreSuite struct {
	suite.Suite
	store *SQLStore

	mockSql sqlmock.Sqlmock
}

func (s *SQLStoreSuite) SetupTest() {
	mockDb, sqlMock, err := sqlmock.New()
	s.Require().NoError(err)
	s.mockSql = sqlMock
	s.store = newSQLStore(sqlx.NewDb(mockDb, "postgres"))
}

func (s *SQLStoreSuite) TearDownTest() {
	s.NoError(s.mockSql.ExpectationsWereMet())
}

func TestSQLStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLStoreSuite))
}

func (s *SQLStoreSuite) TestCreate() {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	s.mockSql.ExpectExec(regexp.QuoteMeta("INSERT INTO mappings (short_code, url, clicks, created_at) VALUES ($1, $2, $3, $4)")).
		WithArgs("QAZWSX", "https://amazon.com", int64(0), createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.store.Create(context.Background(), &models.Mapping{
		ShortCode: "QAZWSX",
		URL:       "https://amazon.com",
		Clicks:    0,
		CreatedAt: createdAt,
	})
	s.NoError(err)
}

func (s *SQLStoreSuite) TestFind() {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mockRows := sqlmock.NewRows([]string{"short_code", "url", "clicks", "created_at"}).
		AddRow("QAZWSX", "https://amazon.com", int64(3), createdAt)
	s.mockSql.ExpectQuery(regexp.QuoteMeta("SELECT short_code, url, clicks, created_at FROM mappings WHERE short_code = $1")).
		WithArgs("QAZWSX").
		WillReturnRows(mockRows)

	mapping, err := s.store.Find(context.Background(), "QAZWSX")
	s.Require().NoError(err)
	s.Equal("QAZWSX", mapping.ShortCode)
	s.Equal("https://amazon.com", mapping.URL)
	s.Equal(int64(3), mapping.Clicks)
	s.Equal(createdAt, mapping.CreatedAt)
}

func (s *SQLStoreSuite) TestFindNotFound() {
	mockRows := sqlmock.NewRows([]string{"short_code", "url", "clicks", "created_at"})
	s.mockSql.ExpectQuery(regexp.QuoteMeta("SELECT short_code, url, clicks, created_at FROM mappings WHERE short_code = $1")).
		WithArgs("unknown").
		WillReturnRows(mockRows)

	_, err := s.store.Find(context.Background(), "unknown")
	s.ErrorIs(err, ErrNotFound)
}

func (s *SQLStoreSuite) TestIncrementClicks() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("UPDATE mappings SET clicks = clicks + 1 WHERE short_code = $1")).
		WithArgs("QAZWSX").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.IncrementClicks(context.Background(), "QAZWSX"))
}

func (s *SQLStoreSuite) TestIncrementClicksMissingMappingIsNoop() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("UPDATE mappings SET clicks = clicks + 1 WHERE short_code = $1")).
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s.NoError(s.store.IncrementClicks(context.Background(), "unknown"))
}

func (s *SQLStoreSuite) TestUpdateURL() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("UPDATE mappings SET url = $1 WHERE short_code = $2")).
		WithArgs("https://example.org", "QAZWSX").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.UpdateURL(context.Background(), "QAZWSX", "https://example.org"))
}

func (s *SQLStoreSuite) TestUpdateURLNotFound() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("UPDATE mappings SET url = $1 WHERE short_code = $2")).
		WithArgs("https://example.org", "unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s.ErrorIs(s.store.UpdateURL(context.Background(), "unknown", "https://example.org"), ErrNotFound)
}

func (s *SQLStoreSuite) TestDelete() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("DELETE FROM mappings WHERE short_code = $1")).
		WithArgs("QAZWSX").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.Delete(context.Background(), "QAZWSX"))
}

func (s *SQLStoreSuite) TestDeleteNotFound() {
	s.mockSql.ExpectExec(regexp.QuoteMeta("DELETE FROM mappings WHERE short_code = $1")).
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s.ErrorIs(s.store.Delete(context.Background(), "unknown"), ErrNotFound)
}
