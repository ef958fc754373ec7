package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// IngredientRecord 导入文件中的一条食材
type IngredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ParseIngredientFile 按扩展名解析食材文件，支持 .json 和 .csv
func ParseIngredientFile(filename string, data []byte) ([]IngredientRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseIngredientsJSON(data)
	case ".csv":
		return ParseIngredientsCSV(data)
	default:
		return nil, fmt.Errorf("不支持的文件格式: %s", filename)
	}
}

// ParseIngredientsJSON 解析JSON数组或JSONL格式
func ParseIngredientsJSON(data []byte) ([]IngredientRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []IngredientRecord
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("解析JSON失败: %w", err)
		}
		return cleanRecords(records)
	}

	// JSONL，每行一个对象
	for i, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var record IngredientRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("第 %d 行解析失败: %w", i+1, err)
		}
		records = append(records, record)
	}
	return cleanRecords(records)
}

// ParseIngredientsCSV 解析CSV，每行 名称,单位；首行为 name,measurement_unit 时视为标题
func ParseIngredientsCSV(data []byte) ([]IngredientRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []IngredientRecord
	first := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析CSV失败: %w", err)
		}

		if first {
			first = false
			if len(row) >= 2 && strings.EqualFold(row[0], "name") && strings.EqualFold(row[1], "measurement_unit") {
				continue
			}
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("CSV行缺少计量单位: %v", row)
		}
		records = append(records, IngredientRecord{Name: row[0], MeasurementUnit: row[1]})
	}
	return cleanRecords(records)
}

func cleanRecords(records []IngredientRecord) ([]IngredientRecord, error) {
	cleaned := records[:0]
	for _, r := range records {
		r.Name = strings.TrimSpace(r.Name)
		r.MeasurementUnit = strings.TrimSpace(r.MeasurementUnit)
		if r.Name == "" || r.MeasurementUnit == "" {
			return nil, fmt.Errorf("食材名称和计量单位不能为空: %+v", r)
		}
		cleaned = append(cleaned, r)
	}
	return cleaned, nil
}
