package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	explorer "github.com/urban-transit-lab/transit-explorer"
	"github.com/urban-transit-lab/transit-explorer/config"
	"github.com/urban-transit-lab/transit-explorer/engine/remote"
	"github.com/urban-transit-lab/transit-explorer/metrics"
	"github.com/urban-transit-lab/transit-explorer/refresh"
	"github.com/urban-transit-lab/transit-explorer/views"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot|export")
	view := flag.String("view", "routes", "routes|trips|stop-times|departures|timetable|map|alerts (oneshot)")
	feedName := flag.String("feed", "", "feed name from config.feeds[]")
	natsURL := flag.String("natsURL", "", "NATS server URL (overrides config)")
	date := flag.String("date", "", "agency-local service date YYYYMMDD (oneshot)")
	routeID := flag.String("routeId", "", "route id (trips/timetable views)")
	tripID := flag.String("tripId", "", "trip id (stop-times view)")
	stopID := flag.String("stopId", "", "stop id (departures view)")
	out := flag.String("out", "", "output file for -mode=export")
	flag.Parse()

	explorer.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	engCfg, rtCfg, expCfg := config.SelectFeed(*feedName)
	if *natsURL != "" {
		engCfg.NATSURL = *natsURL
	}

	client, err := remote.Dial(engCfg.NATSURL, engCfg.Subject, time.Duration(engCfg.TimeoutMS)*time.Millisecond)
	if err != nil {
		log.Fatalf("engine dial error: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builder := views.NewBuilder(client, expCfg.Timezone)
	builder.LocalFallback = expCfg.LocalTimezoneFallback
	if err := builder.ResolveAgencyTimezone(ctx); err != nil {
		log.Printf("agency timezone lookup failed: %v", err)
	}

	col := metrics.NewCollector()
	coord := refresh.NewCoordinator(client, time.Duration(rtCfg.RefreshIntervalMS)*time.Millisecond, col)

	switch *mode {
	case "serve":
		// The server installs the cache-invalidation callback on the
		// coordinator; it must exist before any refresh cycle runs.
		srv := explorer.NewServer(config.Config, client, builder, coord, col)
		if err := coord.RefreshNow(ctx); err != nil {
			log.Printf("initial realtime refresh failed: %v", err)
		}
		go coord.Run(ctx)
		srv.Start()
		srv.HandleGracefulShutdown()
		cancel()
	case "oneshot":
		if err := coord.RefreshNow(ctx); err != nil {
			log.Printf("realtime refresh failed: %v", err)
		}
		day := *date
		if day == "" {
			day = time.Now().Format("20060102")
		}
		var result any
		switch *view {
		case "routes":
			result, err = builder.BuildRoutesGrid(ctx, day)
		case "trips":
			result, err = builder.BuildTripsList(ctx, *routeID, day)
		case "stop-times":
			result, err = builder.BuildStopTimesTable(ctx, *tripID)
		case "departures":
			result, err = builder.BuildDeparturesBoard(ctx, *stopID, day)
		case "timetable":
			result, err = builder.BuildTimetableGrid(ctx, *routeID, day)
		case "map":
			result, err = builder.BuildMapView(ctx)
		case "alerts":
			result, err = builder.BuildAlertsTable(ctx)
		default:
			log.Fatalf("unknown view %q", *view)
		}
		if err != nil {
			log.Fatalf("%s view failed: %v", *view, err)
		}
		buf, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("encode failed: %v", err)
		}
		fmt.Println(string(buf))
	case "export":
		dest := *out
		if dest == "" {
			dest = "gtfs-export.db"
		}
		f, err := os.Create(dest)
		if err != nil {
			log.Fatalf("create %s: %v", dest, err)
		}
		defer f.Close()
		err = client.ExportDatabase(ctx, f, func(frac float64) {
			log.Printf("export %.0f%%", frac*100)
		})
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("database exported to %s", dest)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
