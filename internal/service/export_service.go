package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"forestinv/internal/cache"
	"forestinv/internal/model"
	"forestinv/internal/repository"
)

const summaryCacheKey = "export:summary"
const summaryCacheTTL = 5 * time.Minute

// ExportSummary is the inventory overview shown before choosing an export.
type ExportSummary struct {
	TotalTrees     int64          `json:"total_trees"`
	TotalPlots     int64          `json:"total_plots"`
	TotalSpecies   int64          `json:"total_species"`
	TreesBySpecies map[string]int `json:"trees_by_species"`
	TreesByPlot    map[string]int `json:"trees_by_plot"`

	// Dendrometric aggregates over the whole inventory. Carbon figures only
	// include trees whose species carries a wood density.
	TotalBasalAreaM2 float64 `json:"total_basal_area_m2"`
	TotalVolumeM3    float64 `json:"total_volume_m3"`
	TotalCarbonKg    float64 `json:"total_carbon_kg"`
	TotalCO2eKg      float64 `json:"total_co2e_kg"`
}

// ExportService renders inventory data as CSV, KML and KMZ files.
type ExportService interface {
	TreesCSV(ctx context.Context, plotID *uuid.UUID) ([]byte, error)
	TreesKML(ctx context.Context, plotID *uuid.UUID) (string, error)
	TreesKMZ(ctx context.Context, plotID *uuid.UUID) ([]byte, error)
	PlotsKMZ(ctx context.Context) ([]byte, error)
	All(ctx context.Context) ([]byte, error)
	Summary(ctx context.Context) (*ExportSummary, error)
}

type exportService struct {
	trees   repository.TreeRepository
	plots   repository.PlotRepository
	species repository.SpeciesRepository
	cache   *cache.Client
}

// NewExportService builds an ExportService.
func NewExportService(
	trees repository.TreeRepository,
	plots repository.PlotRepository,
	species repository.SpeciesRepository,
	cache *cache.Client,
) ExportService {
	return &exportService{trees: trees, plots: plots, species: species, cache: cache}
}

func (s *exportService) listTrees(ctx context.Context, plotID *uuid.UUID) ([]model.Tree, error) {
	if plotID != nil {
		return s.trees.ListByPlot(ctx, *plotID)
	}
	return s.trees.List(ctx)
}

// TreesCSV renders tree measurements in the field-sheet column order:
// fecha, noarb, nc, dap, hc, ht, obs, POINT_X, POINT_Y.
func (s *exportService) TreesCSV(ctx context.Context, plotID *uuid.UUID) ([]byte, error) {
	trees, err := s.listTrees(ctx, plotID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"fecha", "noarb", "nc", "dap", "hc", "ht", "obs", "POINT_X", "POINT_Y"}); err != nil {
		return nil, err
	}

	for _, tree := range trees {
		commonName := "Sin especie"
		if tree.Species != nil {
			commonName = tree.Species.CommonName
		}
		commercial := ""
		if tree.CommercialHeight != nil {
			commercial = strconv.FormatFloat(*tree.CommercialHeight, 'f', 2, 64)
		}
		record := []string{
			tree.MeasuredAt.Format("2006-01-02"),
			strconv.Itoa(tree.TreeNumber),
			commonName,
			strconv.FormatFloat(tree.DBH, 'f', 2, 64),
			commercial,
			strconv.FormatFloat(tree.Height, 'f', 2, 64),
			tree.Notes,
			strconv.FormatFloat(tree.Longitude, 'f', 8, 64),
			strconv.FormatFloat(tree.Latitude, 'f', 8, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	log.Printf("exported %d trees to CSV", len(trees))
	return buf.Bytes(), nil
}

// hasCoordinates filters out unset (~zero) GPS fixes.
func hasCoordinates(lat, lon float64) bool {
	return math.Abs(lat) > 0.001 && math.Abs(lon) > 0.001
}

// TreesKML renders geotagged trees as KML placemarks.
func (s *exportService) TreesKML(ctx context.Context, plotID *uuid.UUID) (string, error) {
	trees, err := s.listTrees(ctx, plotID)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	b.WriteString("  <Document>\n")
	b.WriteString("    <name>Inventario Forestal - Arboles</name>\n")
	b.WriteString("    <Style id=\"treeIcon\">\n")
	b.WriteString("      <IconStyle>\n")
	b.WriteString("        <color>ff00ff00</color>\n")
	b.WriteString("        <scale>1.0</scale>\n")
	b.WriteString("        <Icon><href>http://maps.google.com/mapfiles/kml/shapes/parks.png</href></Icon>\n")
	b.WriteString("      </IconStyle>\n")
	b.WriteString("    </Style>\n")

	exported := 0
	for _, tree := range trees {
		if !hasCoordinates(tree.Latitude, tree.Longitude) {
			continue
		}
		scientific := "Sin especie"
		if tree.Species != nil {
			scientific = tree.Species.ScientificName
		}
		altitude := 0.0
		if tree.Altitude != nil {
			altitude = *tree.Altitude
		}

		b.WriteString("    <Placemark>\n")
		fmt.Fprintf(&b, "      <name>Arbol %s</name>\n", html.EscapeString(tree.Code))
		b.WriteString("      <description><![CDATA[\n")
		fmt.Fprintf(&b, "        <b>Especie:</b> %s<br/>\n", scientific)
		fmt.Fprintf(&b, "        <b>DAP:</b> %.2f cm<br/>\n", tree.DBH)
		fmt.Fprintf(&b, "        <b>Altura:</b> %.2f m<br/>\n", tree.Height)
		if tree.CommercialHeight != nil {
			fmt.Fprintf(&b, "        <b>Altura Comercial:</b> %.2f m<br/>\n", *tree.CommercialHeight)
		}
		fmt.Fprintf(&b, "        <b>Estado:</b> %s<br/>\n", tree.Condition)
		fmt.Fprintf(&b, "        <b>Fecha:</b> %s<br/>\n", tree.MeasuredAt.Format("2006-01-02"))
		if tree.Notes != "" {
			fmt.Fprintf(&b, "        <b>Observaciones:</b> %s<br/>\n", tree.Notes)
		}
		b.WriteString("      ]]></description>\n")
		b.WriteString("      <styleUrl>#treeIcon</styleUrl>\n")
		b.WriteString("      <Point>\n")
		fmt.Fprintf(&b, "        <coordinates>%.6f,%.6f,%g</coordinates>\n", tree.Longitude, tree.Latitude, altitude)
		b.WriteString("      </Point>\n")
		b.WriteString("    </Placemark>\n")
		exported++
	}

	b.WriteString("  </Document>\n")
	b.WriteString("</kml>\n")

	log.Printf("exported %d trees to KML", exported)
	return b.String(), nil
}

// TreesKMZ wraps the tree KML in a zip archive as doc.kml.
func (s *exportService) TreesKMZ(ctx context.Context, plotID *uuid.UUID) ([]byte, error) {
	kml, err := s.TreesKML(ctx, plotID)
	if err != nil {
		return nil, err
	}
	return zipKML(kml)
}

// PlotsKMZ renders all geotagged plots as a KMZ file.
func (s *exportService) PlotsKMZ(ctx context.Context) ([]byte, error) {
	plots, err := s.plots.ListWithTrees(ctx)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	b.WriteString("  <Document>\n")
	b.WriteString("    <name>Inventario Forestal - Parcelas</name>\n")
	b.WriteString("    <Style id=\"plotIcon\">\n")
	b.WriteString("      <IconStyle>\n")
	b.WriteString("        <color>ff0000ff</color>\n")
	b.WriteString("        <scale>1.2</scale>\n")
	b.WriteString("        <Icon><href>http://maps.google.com/mapfiles/kml/shapes/target.png</href></Icon>\n")
	b.WriteString("      </IconStyle>\n")
	b.WriteString("    </Style>\n")

	for _, plot := range plots {
		if !hasCoordinates(plot.Latitude, plot.Longitude) {
			continue
		}
		altitude := 0.0
		if plot.Altitude != nil {
			altitude = *plot.Altitude
		}

		b.WriteString("    <Placemark>\n")
		fmt.Fprintf(&b, "      <name>Parcela %s</name>\n", html.EscapeString(plot.Code))
		b.WriteString("      <description><![CDATA[\n")
		fmt.Fprintf(&b, "        <b>Codigo:</b> %s<br/>\n", plot.Code)
		fmt.Fprintf(&b, "        <b>Nombre:</b> %s<br/>\n", plot.Name)
		fmt.Fprintf(&b, "        <b>Area:</b> %.2f ha<br/>\n", plot.AreaHa)
		fmt.Fprintf(&b, "        <b>Numero de Arboles:</b> %d<br/>\n", len(plot.Trees))
		fmt.Fprintf(&b, "        <b>Fecha Creacion:</b> %s<br/>\n", plot.CreatedAt.Format("2006-01-02"))
		if plot.Description != "" {
			fmt.Fprintf(&b, "        <b>Descripcion:</b> %s<br/>\n", plot.Description)
		}
		if plot.Location != "" {
			fmt.Fprintf(&b, "        <b>Ubicacion:</b> %s<br/>\n", plot.Location)
		}
		b.WriteString("      ]]></description>\n")
		b.WriteString("      <styleUrl>#plotIcon</styleUrl>\n")
		b.WriteString("      <Point>\n")
		fmt.Fprintf(&b, "        <coordinates>%.6f,%.6f,%g</coordinates>\n", plot.Longitude, plot.Latitude, altitude)
		b.WriteString("      </Point>\n")
		b.WriteString("    </Placemark>\n")
	}

	b.WriteString("  </Document>\n")
	b.WriteString("</kml>\n")

	return zipKML(b.String())
}

// All bundles the complete inventory into a single zip: the tree field sheet
// as CSV plus the tree and plot KMZ layers.
func (s *exportService) All(ctx context.Context) ([]byte, error) {
	csvData, err := s.TreesCSV(ctx, nil)
	if err != nil {
		return nil, err
	}
	treesKMZ, err := s.TreesKMZ(ctx, nil)
	if err != nil {
		return nil, err
	}
	plotsKMZ, err := s.PlotsKMZ(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	files := []struct {
		name string
		data []byte
	}{
		{"arboles.csv", csvData},
		{"arboles.kmz", treesKMZ},
		{"parcelas.kmz", plotsKMZ},
	}
	for _, f := range files {
		entry, err := archive.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write(f.data); err != nil {
			return nil, err
		}
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary aggregates inventory counts, cached briefly since the admin
// dashboard polls it.
func (s *exportService) Summary(ctx context.Context) (*ExportSummary, error) {
	if data, _ := s.cache.Get(ctx, summaryCacheKey); data != nil {
		var cached ExportSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	totalTrees, err := s.trees.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPlots, err := s.plots.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSpecies, err := s.species.Count(ctx)
	if err != nil {
		return nil, err
	}

	trees, err := s.trees.List(ctx)
	if err != nil {
		return nil, err
	}

	bySpecies := make(map[string]int)
	byPlot := make(map[string]int)
	var basalArea, volume, carbon float64
	for _, tree := range trees {
		speciesName := "Sin especie"
		if tree.Species != nil {
			speciesName = tree.Species.ScientificName
		}
		plotCode := "Sin parcela"
		if tree.Plot != nil {
			plotCode = tree.Plot.Code
		}
		bySpecies[speciesName]++
		byPlot[plotCode]++

		basalArea += BasalArea(tree.DBH)
		vol := StemVolume(tree.DBH, tree.Height, DefaultFormFactor)
		volume += vol
		if tree.Species != nil && tree.Species.WoodDensity != nil {
			carbon += Carbon(Biomass(vol, *tree.Species.WoodDensity))
		}
	}

	summary := &ExportSummary{
		TotalTrees:       totalTrees,
		TotalPlots:       totalPlots,
		TotalSpecies:     totalSpecies,
		TreesBySpecies:   bySpecies,
		TreesByPlot:      byPlot,
		TotalBasalAreaM2: basalArea,
		TotalVolumeM3:    volume,
		TotalCarbonKg:    carbon,
		TotalCO2eKg:      CO2Equivalent(carbon),
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, summaryCacheKey, payload, summaryCacheTTL)
	}
	return summary, nil
}

func zipKML(kml string) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	entry, err := archive.Create("doc.kml")
	if err != nil {
		return nil, err
	}
	if _, err := entry.Write([]byte(kml)); err != nil {
		return nil, err
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
