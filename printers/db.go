package printers

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

const (
	eventTypeResult  = "result"
	eventTypeSummary = "summary"
)

const (
	dataTableSchema = `CREATE TABLE %s (
    id INTEGER PRIMARY KEY,
    event_type TEXT NOT NULL, -- result or summary
    run_id TEXT NOT NULL,
    timestamp DATETIME,

    target TEXT,
    status TEXT,
    latency_ms REAL,
    retries_used INTEGER,
    error TEXT,

    healthy INTEGER,
    total INTEGER,
    latency_min REAL,
    latency_avg REAL,
    latency_max REAL,
    start_time DATETIME,
    end_time DATETIME,
    total_duration TEXT
	);`

	resultSaveSchema = `INSERT INTO %s (
	event_type,
	run_id,
	timestamp,
	target,
	status,
	latency_ms,
	retries_used,
	error) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	summarySaveSchema = `INSERT INTO %s (
	event_type,
	run_id,
	timestamp,
	healthy,
	total,
	latency_min,
	latency_avg,
	latency_max,
	start_time,
	end_time,
	total_duration) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
)

// DatabasePrinter stores every run in its own table of a sqlite3 database.
type DatabasePrinter struct {
	Conn      *sqlite.Conn
	DbPath    string
	TableName string
	opt       options
}

type DatabasePrinterOption = option.Option[DatabasePrinter]

func (p *DatabasePrinter) options() *options {
	return &p.opt
}

// NewDatabasePrinter opens (or creates) the database at dbPath and creates
// the table for this run.
func NewDatabasePrinter(dbPath string, opts ...DatabasePrinterOption) (*DatabasePrinter, error) {
	filename := addDbExtension(dbPath)

	conn, err := sqlite.OpenConn(filename, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("create database %q: %w", filename, err)
	}

	tableName := sanitizeTableName(time.Now())
	tableSchema := fmt.Sprintf(dataTableSchema, tableName)

	if err := sqlitex.ExecuteTransient(conn, tableSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create data table: %w", err)
	}

	p := &DatabasePrinter{
		Conn:      conn,
		DbPath:    filename,
		TableName: tableName,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func addDbExtension(filename string) string {
	if strings.HasSuffix(filename, ".db") {
		return filename
	}

	return filename + ".db"
}

// sanitizeTableName formats the table name as "tcprobe__year_month_day_hour_minute_sec_nanos".
// table name can't have '.','-',':' or ' ' and can't start with numbers
func sanitizeTableName(now time.Time) string {
	sanitizedTime := strings.NewReplacer("-", "_", ":", "_", " ", "_", ".", "_").
		Replace(now.Format("2006-01-02 15:04:05.000000000"))

	tableName := "tcprobe__" + sanitizedTime

	if unicode.IsNumber(rune(tableName[0])) {
		tableName = "_" + tableName
	}

	return tableName
}

// PrintProbeResult satisfies the Printer interface. Rows are written in
// PrintSummary, once the run ID is known.
func (p *DatabasePrinter) PrintProbeResult(_ *statistics.ProbeResult) {}

// PrintSummary saves every result and the summary in one transaction.
func (p *DatabasePrinter) PrintSummary(s *statistics.Summary) {
	if err := p.saveRun(s); err != nil {
		p.PrintError("write run to the database %q: %v", p.DbPath, err)
		return
	}

	fmt.Printf("Summary: %s - results saved to %q in the table %q\n", summaryLine(s), p.DbPath, p.TableName)
}

func (p *DatabasePrinter) saveRun(s *statistics.Summary) (err error) {
	defer sqlitex.Save(p.Conn)(&err)

	timestamp := time.Now().Format(time.DateTime)

	for i := range s.Results {
		r := &s.Results[i]
		if p.opt.shouldSkip(r.IsHealthy()) {
			continue
		}

		var latency any
		if r.IsHealthy() {
			latency = r.LatencyMS()
		}

		err = sqlitex.Execute(p.Conn, fmt.Sprintf(resultSaveSchema, p.TableName), &sqlitex.ExecOptions{
			Args: []any{
				eventTypeResult,
				s.RunID,
				timestamp,
				r.Target,
				string(r.Status),
				latency,
				r.RetriesUsed,
				r.Error,
			},
		})
		if err != nil {
			return fmt.Errorf("save result of %s: %w", r.Target, err)
		}
	}

	var latencyMin, latencyAvg, latencyMax any
	if s.Latency.HasResults {
		latencyMin = float64(s.Latency.Min)
		latencyAvg = float64(s.Latency.Average)
		latencyMax = float64(s.Latency.Max)
	}

	err = sqlitex.Execute(p.Conn, fmt.Sprintf(summarySaveSchema, p.TableName), &sqlitex.ExecOptions{
		Args: []any{
			eventTypeSummary,
			s.RunID,
			timestamp,
			s.Healthy,
			s.Total,
			latencyMin,
			latencyAvg,
			latencyMax,
			s.StartTime.Format(time.DateTime),
			s.EndTime.Format(time.DateTime),
			s.Duration().String(),
		},
	})
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	return nil
}

// PrintError prints an error message to stderr.
func (p *DatabasePrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Database Error: "+format+"\n", args...)
}

// Done closes the database connection.
func (p *DatabasePrinter) Done() error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.Close()
}
