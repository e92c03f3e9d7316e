package main

import (
	"context"
	"encoding/json"
	"flag"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/eventide"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/ingestion"
)

var listings = []core.EventDocument{
	{
		Contents: "Sunrise yoga by the lake\nGentle hatha flow for all levels. Bring your own mat.\nContribution: Free\nContact: +91 98765 43210",
		Metadata: map[string]string{
			core.MetaDay:      "Monday",
			core.MetaTime:     "6:30 AM",
			core.MetaLocation: "Lakeside Pavilion",
		},
	},
	{
		Contents: "Community potluck dinner\nShare a dish from your kitchen and meet your neighbours.\nContribution: One dish to share\nContact: +91 91234 56789",
		Metadata: map[string]string{
			core.MetaDate:     "November 8, 2025",
			core.MetaTime:     "7:00 PM",
			core.MetaLocation: "Town Hall Annex",
		},
	},
	{
		Contents: "Sound healing session\nDeep relaxation with Himalayan singing bowls and gongs.\nContribution: Rs. 500\nContact: +91 99887 76655\nNote: Arrive 15 minutes early, seating is limited.",
		Metadata: map[string]string{
			core.MetaDate:     "November 12, 2025",
			core.MetaTime:     "5:30 PM",
			core.MetaLocation: "Serenity Studio",
		},
	},
	{
		Contents: "Weekly farmers market\nOrganic produce, fresh bread, and local crafts every weekend.",
		Metadata: map[string]string{
			core.MetaDay:      "Saturday",
			core.MetaTime:     "8:00 AM",
			core.MetaLocation: "Central Green",
		},
	},
	{
		Contents: "Pottery studio open hours\nWheel throwing and hand building. Walk in any day or book a slot.\nContribution: Rs. 300 per session\nContact: +91 90909 80808",
		Metadata: map[string]string{
			core.MetaLocation: "Clayworks Collective",
		},
	},
	{
		Contents: "Permaculture garden tour\nLearn composting, mulching, and water harvesting on a working farm.\nContribution: Rs. 200\nContact: +91 98989 12121",
		Metadata: map[string]string{
			core.MetaDay:      "Wednesday",
			core.MetaTime:     "10:00 AM",
			core.MetaLocation: "Terra Farm",
		},
	},
	{
		Contents: "Capoeira for beginners\nMovement, music, and play. No experience needed.\nContact: +91 91111 22233",
		Metadata: map[string]string{
			core.MetaDay:      "Tuesday",
			core.MetaTime:     "6:00 PM",
			core.MetaLocation: "Riverside Sports Ground",
		},
	},
	{
		Contents: "Full moon drum circle\nBring a drum or borrow one of ours. All ages welcome.\nContribution: Donation based",
		Metadata: map[string]string{
			core.MetaDate:     "November 5, 2025",
			core.MetaTime:     "8:00 PM",
			core.MetaLocation: "Beach Amphitheatre",
		},
	},
	{
		Contents: "Silent reading club\nAn hour of quiet reading followed by optional conversation over tea.",
		Metadata: map[string]string{
			core.MetaDay:      "Sunday",
			core.MetaTime:     "4:00 PM",
			core.MetaLocation: "Old Library Courtyard",
		},
	},
	{
		Contents: "Ayurvedic consultation\nOne-on-one sessions with a practicing vaidya, by appointment only.\nContribution: Rs. 800\nContact: +91 95555 44332",
		Metadata: map[string]string{
			core.MetaLocation: "Wellness Centre, Room 4",
		},
	},
}

var (
	dbPath       = flag.String("db", "./events_db", "path to the event database")
	seedFileName = flag.String("src", "", "JSON file of seed event documents")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// docsFromFile returns an iterator over event documents parsed from a JSON
// file containing an array of {contents, metadata} objects.
func docsFromFile(filename string) (iter.Seq[*core.EventDocument], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Contents string            `json:"contents"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return func(yield func(*core.EventDocument) bool) {
		for _, entry := range entries {
			doc := &core.EventDocument{Contents: entry.Contents, Metadata: entry.Metadata}
			if !yield(doc) {
				return
			}
		}
	}, nil
}

// docsFromSlice returns an iterator over the built-in sample listings.
func docsFromSlice(docs []core.EventDocument) iter.Seq[*core.EventDocument] {
	return func(yield func(*core.EventDocument) bool) {
		for i := range docs {
			if !yield(&docs[i]) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests documents in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[*core.EventDocument], batchSize int) error {
	batch := make([]*core.EventDocument, 0, batchSize)

	for doc := range source {
		batch = append(batch, doc)
		if len(batch) == batchSize {
			if _, err := pipeline.Ingest(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining documents
	if len(batch) > 0 {
		if _, err := pipeline.Ingest(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	assistant, err := eventide.NewAssistant(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer assistant.Close()

	ingester, err := assistant.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[*core.EventDocument]
	if seedFileName != nil && *seedFileName != "" {
		source, err = docsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = docsFromSlice(listings)
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, ingester, source, 5); err != nil {
		panic(err)
	}

	// Let the asynchronous embedding work finish before exiting.
	drainCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	if err := ingester.Drain(drainCtx); err != nil {
		panic(err)
	}

	slog.Info("seeding complete")
}
