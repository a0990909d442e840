package connstr

import "testing"

func TestParseConnectionStringBasic(t *testing.T) {
	p, err := ParseConnectionString("DRIVER={Furball};SERVER=db.example.com,14330;DATABASE=widgets;UID=sa;PWD=s3cret;TrustServerCertificate=yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Server != "db.example.com" || p.Port != 14330 || p.Database != "widgets" ||
		p.User != "sa" || p.Password != "s3cret" || !p.TrustServerCertificate {
		t.Fatalf("unexpected parse result: %+v", p)
	}
}

func TestParseConnectionStringDefaultsPort(t *testing.T) {
	p, err := ParseConnectionString("SERVER=db;DATABASE=x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Port != defaultPort {
		t.Fatalf("expected default port %d, got %d", defaultPort, p.Port)
	}
}

func TestParseConnectionStringMissingServerFails(t *testing.T) {
	if _, err := ParseConnectionString("DATABASE=x"); err == nil {
		t.Fatal("expected an error when SERVER is missing")
	}
}

func TestParseConnectionStringTreatsUnknownKeysAsNoop(t *testing.T) {
	p, err := ParseConnectionString("SERVER=db;APP=myapp;Encrypt=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Server != "db" {
		t.Fatalf("unexpected result: %+v", p)
	}
}

func TestSplitAttrsRespectsBraces(t *testing.T) {
	parts := splitAttrs("A={x;y};B=z")
	if len(parts) != 2 || parts[0] != "A={x;y}" || parts[1] != "B=z" {
		t.Fatalf("unexpected split: %#v", parts)
	}
}
