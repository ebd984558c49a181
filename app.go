package gtfsrtjson

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/theoremus-urban-solutions/gtfsrt-to-json/config"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/gtfsrt"
)

// NewFromConfig builds the production pipeline: an HTTP fetcher, the
// GTFS-RT decoder, and an emitter writing to console and cfg.Output.
func NewFromConfig(cfg config.AppConfig, console io.Writer, logger *log.Logger) *Pipeline {
	client := gtfsrt.NewClient(
		gtfsrt.WithTimeout(cfg.Timeout()),
		gtfsrt.WithUserAgent(cfg.UserAgent),
		gtfsrt.WithHeaders(cfg.Headers),
	)
	jf := formatter.NewJSONFormatter(formatter.JSONOptions{
		Indent:          cfg.JSON.Indent,
		UseProtoNames:   cfg.JSON.UseProtoNames,
		EmitUnpopulated: cfg.JSON.EmitUnpopulated,
	})
	emitter := formatter.NewEmitter(jf, console, cfg.Output)
	return NewPipeline(cfg.URL, client, gtfsrt.Decoder{}, emitter, logger)
}
