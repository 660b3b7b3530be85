package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	milling "Machinist/internal/calc/milling"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type MillingImportResult struct {
	Count   int              `json:"count"`
	Results []milling.Result `json:"results"`
}

// Milling imports an .xlsx sheet of cuts and calculates every row.
// The header row is skipped; rows that do not parse are ignored.
func (h *Handler) Milling(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []milling.Result
	for i := 1; i < len(rows); i++ {
		input, err := parseMillingRow(rows[i])
		if err != nil {
			continue
		}
		res, err := milling.Calculate(input)
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MillingImportResult{Count: len(results), Results: results})
}

func parseMillingRow(row []string) (milling.Request, error) {
	// expected: diameter_mm, flutes, doc_mm, woc_mm, sfm, mmpt, kc, material(optional), rigidity(optional)
	if len(row) < 7 {
		return milling.Request{}, fmt.Errorf("bad row")
	}
	diameter, err := toFloat(row[0])
	if err != nil {
		return milling.Request{}, err
	}
	flutes, err := toFloat(row[1])
	if err != nil {
		return milling.Request{}, err
	}
	doc, err := toFloat(row[2])
	if err != nil {
		return milling.Request{}, err
	}
	woc, err := toFloat(row[3])
	if err != nil {
		return milling.Request{}, err
	}
	sfm, err := toFloat(row[4])
	if err != nil {
		return milling.Request{}, err
	}
	mmpt, err := toFloat(row[5])
	if err != nil {
		return milling.Request{}, err
	}
	kc, err := toFloat(row[6])
	if err != nil {
		return milling.Request{}, err
	}
	material := ""
	if len(row) > 7 {
		material = row[7]
	}
	rigidity := ""
	if len(row) > 8 {
		rigidity = row[8]
	}
	return milling.Request{
		DiameterMM:    diameter,
		FluteNum:      int(flutes),
		DOCMM:         doc,
		WOCMM:         woc,
		SFM:           sfm,
		MMPT:          mmpt,
		Kc:            kc,
		MaterialType:  material,
		RigidityLevel: rigidity,
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
