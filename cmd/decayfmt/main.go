// Command decayfmt reads serialized decay reports, as written by a
// chain's JSON or msgpack encoding, prints them for humans and converts
// them between encodings.
//
//	decayfmt show report.json
//	tail -f service.log.ndjson | decayfmt show --color on
//	decayfmt convert --from json --to msgpack report.json > report.msgpack
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("decayfmt failed", "error", err)
		os.Exit(1)
	}
}
