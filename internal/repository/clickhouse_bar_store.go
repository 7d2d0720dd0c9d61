package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
	pkgch "FXBrief/pkg/clickhouse"
	applogger "FXBrief/pkg/logger"
)

// CHBarStore implements BarSource backed by ClickHouse. It only ever reads;
// the ingest side owns the tables.
type CHBarStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.Bars, error) {
	start := time.Now()
	table, err := tableForTF(tf)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT ts, open, high, low, close, volume
        FROM %s
        WHERE symbol = ? AND ts >= ? AND ts <= ?
        ORDER BY ts ASC
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_bars query error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get bars: %w", err)
	}
	defer rows.Close()

	out := make(models.Bars, 0, 1024)
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_bars scan error",
					applogger.String("table", table),
					applogger.String("symbol", symbol),
					applogger.String("tf", string(tf)),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = b.Time.UTC() // series contract: UTC timestamps
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_bars rows error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_bars ok",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHBarStore) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.Bars, error) {
	start := time.Now()
	table, err := tableForTF(tf)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT ts, open, high, low, close, volume
        FROM %s
        WHERE symbol = ?
        ORDER BY ts DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars query error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	defer rows.Close()

	tmp := make(models.Bars, 0, n)
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_bars scan error",
					applogger.String("table", table),
					applogger.String("symbol", symbol),
					applogger.String("tf", string(tf)),
					applogger.Int("limit", n),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = b.Time.UTC()
		tmp = append(tmp, b)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars rows error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_bars ok",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

// Health pings the connection pool.
func (s *CHBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func tableForTF(tf domrepo.Timeframe) (string, error) {
	switch tf {
	case domrepo.TF1d:
		return "fxbrief.fx_bars_1d", nil
	case domrepo.TF1h:
		return "fxbrief.fx_bars_1h", nil
	default:
		return "", fmt.Errorf("unsupported timeframe: %s", tf)
	}
}

var _ domrepo.BarSource = (*CHBarStore)(nil)
