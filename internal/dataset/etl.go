package dataset

import (
	"log/slog"
	"strings"
)

// FilterRaw reduces the raw CFPB export to the target product categories and
// drops rows without a narrative, writing the result for ingestion. Returns
// the number of rows kept.
func FilterRaw(rawPath, outPath string, targetProducts []string, log *slog.Logger) (int, error) {
	records, header, err := ReadCSV(rawPath)
	if err != nil {
		return 0, err
	}
	log.Info("filtering raw complaints", "rows", len(records), "products", len(targetProducts))

	targets := make(map[string]struct{}, len(targetProducts))
	for _, p := range targetProducts {
		targets[p] = struct{}{}
	}

	kept := records[:0]
	for _, rec := range records {
		if _, ok := targets[rec[ColProduct]]; !ok {
			continue
		}
		if strings.TrimSpace(rec[ColNarrative]) == "" {
			continue
		}
		kept = append(kept, rec)
	}

	if err := WriteCSV(outPath, header, kept); err != nil {
		return 0, err
	}
	log.Info("saved filtered complaints", "rows", len(kept), "path", outPath)
	return len(kept), nil
}
