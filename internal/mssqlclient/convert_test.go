package mssqlclient

import (
	"database/sql"
	"testing"
	"time"

	"github.com/copycatdb/furball/internal/tdsclient"
)

func TestCellForBinaryPopulatesBytes(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	cell := cellFor(tdsclient.KindBytes, &b)
	if cell.Null {
		t.Fatalf("expected non-null cell")
	}
	if string(cell.Bytes) != string(b) {
		t.Fatalf("expected Bytes to carry the scanned value, got %+v", cell)
	}
	if cell.Str != "" || cell.Text != "" {
		t.Fatalf("binary cell should not populate Str/Text, got %+v", cell)
	}
}

func TestCellForBinaryNull(t *testing.T) {
	var b []byte
	cell := cellFor(tdsclient.KindBytes, &b)
	if !cell.Null {
		t.Fatalf("expected a nil scan destination to report Null")
	}
}

func TestCellForTemporalUsesCanonicalLayout(t *testing.T) {
	nt := &sql.NullTime{Valid: true, Time: time.Date(2024, 3, 5, 13, 4, 5, 123400000, time.UTC)}
	cell := cellFor(tdsclient.KindDateTime, nt)
	if cell.Text != "2024-03-05 13:04:05.1234" {
		t.Fatalf("unexpected canonical timestamp text: %q", cell.Text)
	}
}

func TestCellForTemporalNull(t *testing.T) {
	nt := &sql.NullTime{Valid: false}
	cell := cellFor(tdsclient.KindDate, nt)
	if !cell.Null {
		t.Fatalf("expected a NULL sql.NullTime to report Null")
	}
}

func TestFormatTemporalDate(t *testing.T) {
	got := formatTemporal(tdsclient.KindDate, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "2024-03-05" {
		t.Fatalf("unexpected date text: %q", got)
	}
}

func TestFormatTemporalTimeDropsZeroFraction(t *testing.T) {
	got := formatTemporal(tdsclient.KindTime, time.Date(2024, 3, 5, 13, 4, 5, 0, time.UTC))
	if got != "13:04:05" {
		t.Fatalf("unexpected time text: %q", got)
	}
}

func TestFormatTemporalDateTimeOffsetIncludesZone(t *testing.T) {
	loc := time.FixedZone("", -7*3600)
	got := formatTemporal(tdsclient.KindDateTimeOffset, time.Date(2024, 3, 5, 13, 4, 5, 0, loc))
	if got != "2024-03-05 13:04:05 -07:00" {
		t.Fatalf("unexpected datetimeoffset text: %q", got)
	}
}
