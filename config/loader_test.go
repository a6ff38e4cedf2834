package config

import "testing"

const sampleYAML = `
server:
  port: 9090
engine:
  natsURL: nats://nats.internal:4222
  subject: gtfs.engine.query
  timeoutMS: 5000
realtime:
  refreshIntervalMS: 30000
explorer:
  timezone: Europe/Sofia
feeds:
  - name: sofia
    engine:
      natsURL: nats://sofia.internal:4222
      subject: gtfs.sofia.query
    realtime:
      refreshIntervalMS: 15000
    explorer:
      agency_id: SOF
      localTimezoneFallback: true
`

func TestLoadAppConfigBytes(t *testing.T) {
	if err := LoadAppConfigBytes([]byte(sampleYAML)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Config.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", Config.Server.Port)
	}
	if Config.Explorer.Timezone != "Europe/Sofia" {
		t.Errorf("expected Europe/Sofia, got %q", Config.Explorer.Timezone)
	}
	if len(Config.Feeds) != 1 || Config.Feeds[0].Name != "sofia" {
		t.Fatalf("expected one feed named sofia, got %+v", Config.Feeds)
	}
}

func TestLoadAppConfigBytesDefaults(t *testing.T) {
	if err := LoadAppConfigBytes([]byte("server:\n  port: 0\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Config.Server.Port != 16280 {
		t.Errorf("expected default port 16280, got %d", Config.Server.Port)
	}
	if Config.Engine.NATSURL != "nats://127.0.0.1:4222" {
		t.Errorf("expected default NATS url, got %q", Config.Engine.NATSURL)
	}
	if Config.Engine.Subject != "gtfs.engine.query" {
		t.Errorf("expected default subject, got %q", Config.Engine.Subject)
	}
	if Config.Engine.TimeoutMS != 15000 {
		t.Errorf("expected default timeout, got %d", Config.Engine.TimeoutMS)
	}
}

func TestLoadAppConfigBytesRejectsBadFeed(t *testing.T) {
	bad := `
server:
  port: 8080
feeds:
  - engine:
      subject: gtfs.engine.query
`
	if err := LoadAppConfigBytes([]byte(bad)); err == nil {
		t.Fatal("a feed without a name must be rejected")
	}
}

func TestSelectFeed(t *testing.T) {
	if err := LoadAppConfigBytes([]byte(sampleYAML)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("by name", func(t *testing.T) {
		eng, rt, exp := SelectFeed("sofia")
		if eng.Subject != "gtfs.sofia.query" {
			t.Errorf("expected feed subject, got %q", eng.Subject)
		}
		if rt.RefreshIntervalMS != 15000 {
			t.Errorf("expected feed interval, got %d", rt.RefreshIntervalMS)
		}
		if !exp.LocalTimezoneFallback {
			t.Error("expected feed fallback flag")
		}
	})

	t.Run("unknown name falls back to first feed", func(t *testing.T) {
		eng, _, _ := SelectFeed("nowhere")
		if eng.Subject != "gtfs.sofia.query" {
			t.Errorf("expected first feed, got %q", eng.Subject)
		}
	})

	t.Run("no feeds uses top level", func(t *testing.T) {
		if err := LoadAppConfigBytes([]byte("server:\n  port: 8080\nengine:\n  subject: top.level\n")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		eng, _, _ := SelectFeed("")
		if eng.Subject != "top.level" {
			t.Errorf("expected top-level engine, got %q", eng.Subject)
		}
	})
}
