package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/gearplan/internal/entity"
	"github.com/eslsoft/gearplan/internal/repository"
)

// Column headers follow the input workbook contract.
const (
	columnModuleName     = "Nome do Tema"
	columnLessonName     = "Nome da Aula"
	columnLessonDuration = "Duração"
)

// XLSXCatalogRepository loads the module and lesson catalogs from the two
// input workbooks. Lesson row order is preserved: it is the allocation
// order.
type XLSXCatalogRepository struct {
	modulesPath string
	lessonsPath string
	examTypes   []string
}

// NewXLSXCatalogRepository builds a catalog repository over the given
// workbook paths. examTypes names the weight columns expected on the module
// sheet.
func NewXLSXCatalogRepository(modulesPath, lessonsPath string, examTypes []string) repository.CatalogRepository {
	return &XLSXCatalogRepository{
		modulesPath: modulesPath,
		lessonsPath: lessonsPath,
		examTypes:   examTypes,
	}
}

func (r *XLSXCatalogRepository) LoadModules(ctx context.Context) ([]entity.ModuleWeights, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFirstSheet(r.modulesPath)
	if err != nil {
		return nil, err
	}
	header, err := headerIndex(rows, r.modulesPath, append([]string{columnModuleName}, r.examTypes...))
	if err != nil {
		return nil, err
	}

	var modules []entity.ModuleWeights
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, header[columnModuleName]))
		if name == "" {
			continue
		}
		weights := make(map[string]int, len(r.examTypes))
		for _, examType := range r.examTypes {
			value := cell(row, header[examType])
			weight, err := parseCount(value)
			if err != nil {
				return nil, fmt.Errorf("module %q, column %q: %w", name, examType, err)
			}
			weights[examType] = weight
		}
		modules = append(modules, entity.ModuleWeights{Name: name, Weights: weights})
	}
	return modules, nil
}

func (r *XLSXCatalogRepository) LoadLessons(ctx context.Context) ([]entity.LessonSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFirstSheet(r.lessonsPath)
	if err != nil {
		return nil, err
	}
	header, err := headerIndex(rows, r.lessonsPath, []string{columnLessonName, columnModuleName, columnLessonDuration})
	if err != nil {
		return nil, err
	}

	var lessons []entity.LessonSource
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, header[columnLessonName]))
		if name == "" {
			continue
		}
		duration, err := parseCount(cell(row, header[columnLessonDuration]))
		if err != nil {
			return nil, fmt.Errorf("lesson %q, column %q: %w", name, columnLessonDuration, err)
		}
		lessons = append(lessons, entity.LessonSource{
			Name:     name,
			Module:   strings.TrimSpace(cell(row, header[columnModuleName])),
			Duration: duration,
		})
	}
	return lessons, nil
}

func readFirstSheet(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheets[0], path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s: sheet %s is empty", path, sheets[0])
	}
	return rows, nil
}

// headerIndex maps required column names to their positions on the first
// row, erroring on the first absent column.
func headerIndex(rows [][]string, path string, required []string) (map[string]int, error) {
	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", path, entity.ErrMissingColumn, name)
		}
	}
	return index, nil
}

// cell reads a column from a row, tolerating the trailing-cell trimming
// excelize applies to sparse rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCount parses a non-negative integer cell. Blank cells count as zero;
// spreadsheet numerics that arrive as floats ("90.0") are accepted when
// whole.
func parseCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number: %q", value)
	}
	return int(f), nil
}
