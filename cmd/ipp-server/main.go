// This binary serves coordinate projection requests over HTTP, backed by a
// pwaln store loaded from either the local filesystem or a GCS bucket.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/comparative-genomics/ipp"
	"github.com/comparative-genomics/ipp/analytics"
	"github.com/comparative-genomics/ipp/internal/storage"
)

var (
	port = flag.Int("port", 8080, "HTTP service port")

	pwalnFile = flag.String("pwaln_file", "", "path or object name of the pwaln binary file")
	sizesDir  = flag.String("sizes_dir", "", "local directory holding <species>.sizes files; not used with -gcs_bucket")
	gcsBucket = flag.String("gcs_bucket", "", "if set, pwaln_file and the <species>.sizes files are read from the root of this GCS bucket instead of the local filesystem")

	halfLife = flag.Uint64("half_life", 1_000_000, "reference-genome distance, in bp, at which a single-hop projection score is 0.5")

	cpuProfile = flag.Bool("profile", false, "enable CPU profiling for the lifetime of the process")

	// Enable or disable anonymous usage tracking.
	//
	// If enabled, anonymous information about requests handled by the
	// server is logged via Google Analytics. No user identifying
	// information is ever sent.
	trackUsage = flag.Bool("track_usage", false, "anonymous usage tracking")
)

func main() {
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if *pwalnFile == "" {
		log.Fatalf("You must specify -pwaln_file.")
	}

	engine, err := loadEngine(context.Background())
	if err != nil {
		log.Fatalf("Failed to load pwaln store: %v", err)
	}
	engine.SetHalfLife(uint32(*halfLife))

	router := gin.Default()
	router.Use(requestIDMiddleware)
	router.GET("/project", newProjectHandler(engine))

	handler := http.Handler(router)
	if *trackUsage {
		log.Printf("Enabling anonymous usage tracking")
		client := analytics.NewClient("UA-000000000-1", uuid.New().String())
		handler = analytics.TrackingHandler(handler, func(hits []analytics.Hit) {
			if err := client.Send(hits); err != nil {
				log.Printf("Failed to send %d hits to analytics: %v", len(hits), err)
			}
		})
	}

	address := ":" + strconv.Itoa(*port)
	if err := http.ListenAndServe(address, handler); err != nil {
		log.Fatalf("HTTP server returned an error: %v", err)
	}
}

func loadEngine(ctx context.Context) (*ipp.Engine, error) {
	if *gcsBucket != "" {
		src, err := storage.NewGCSSource(ctx, *gcsBucket)
		if err != nil {
			return nil, err
		}
		return ipp.LoadEngineFromSource(ctx, src, *pwalnFile)
	}

	f, err := openLocal(*pwalnFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ipp.LoadEngine(f, *sizesDir)
}

func requestIDMiddleware(c *gin.Context) {
	c.Set("request_id", uuid.New().String())
	c.Next()
}
