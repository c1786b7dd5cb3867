// Package table loads wing case folders: per-element control point tables,
// endplate rows and the optional run configuration file.
package table

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/multiwing/airfoil"
	"github.com/soypat/multiwing/span"
	"github.com/soypat/multiwing/wing"
)

// Case folder layout.
const (
	WingsDir     = "Wings"
	EndplatesDir = "Endplates"
	ConfigFile   = "case.yaml"
)

// ErrElementNumbering is returned when element folders are not numbered 1..n.
var ErrElementNumbering = errors.New("table: element folders must be numbered consecutively from 1")

// elementFiles maps each element file to the range of chromosome fields,
// in airfoil.Names order, whose columns it holds.
var elementFiles = []struct {
	name       string
	start, end int
}{
	{"UpperInput.csv", 0, 6},
	{"LowerInput.csv", 6, airfoil.FieldAngle},
	{"Parameters.csv", airfoil.FieldAngle, airfoil.NumFields},
}

var endplateColumns = [...]string{"HOff1", "VoffUpp1", "VoffLow1", "HOff2", "VoffUpp2", "VoffLow2", "Thickness", "z"}

// Case is the content of a case folder.
type Case struct {
	Elements  []span.ElementTable
	Endplates []wing.Endplate
}

// LoadCase reads the case folder at dir.
func LoadCase(dir string) (Case, error) {
	return LoadCaseFS(os.DirFS(dir))
}

// LoadCaseFS reads a case folder rooted at fsys. Element folders are read
// in numeric order. The endplate folder is optional and its files are read
// in lexical order.
func LoadCaseFS(fsys fs.FS) (Case, error) {
	var c Case
	dirs, err := elementDirs(fsys)
	if err != nil {
		return c, err
	}
	for _, dir := range dirs {
		e, err := loadElement(fsys, dir)
		if err != nil {
			return c, err
		}
		c.Elements = append(c.Elements, e)
	}
	c.Endplates, err = loadEndplates(fsys)
	return c, err
}

func elementDirs(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, WingsDir)
	if err != nil {
		return nil, err
	}
	var nums []int
	for _, e := range entries {
		n, err := strconv.Atoi(e.Name())
		if err != nil || !e.IsDir() {
			continue // Stray files such as .DS_Store.
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("%s: no element folders", WingsDir)
	}
	sort.Ints(nums)
	dirs := make([]string, len(nums))
	for i, n := range nums {
		if n != i+1 {
			return nil, fmt.Errorf("%w: found %v", ErrElementNumbering, nums)
		}
		dirs[i] = path.Join(WingsDir, strconv.Itoa(n))
	}
	return dirs, nil
}

func loadElement(fsys fs.FS, dir string) (span.ElementTable, error) {
	var e span.ElementTable
	for _, f := range elementFiles {
		sh, err := readSheet(fsys, path.Join(dir, f.name))
		if err != nil {
			return e, err
		}
		for q := f.start; q < f.end; q++ {
			z, err := sh.column(airfoil.Names[q] + "z")
			if err != nil {
				return e, err
			}
			v, err := sh.column(airfoil.Names[q] + "y")
			if err != nil {
				return e, err
			}
			e[q] = span.Samples{Z: z, V: v}
		}
	}
	return e, nil
}

func loadEndplates(fsys fs.FS) ([]wing.Endplate, error) {
	entries, err := fs.ReadDir(fsys, EndplatesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var plates []wing.Endplate
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ".csv") {
			continue
		}
		sh, err := readSheet(fsys, path.Join(EndplatesDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var cols [len(endplateColumns)][]float64
		for i, name := range endplateColumns {
			cols[i], err = sh.column(name)
			if err != nil {
				return nil, err
			}
		}
		for r := range sh.rows {
			plates = append(plates, wing.Endplate{
				HOff1:     cols[0][r],
				VoffUpp1:  cols[1][r],
				VoffLow1:  cols[2][r],
				HOff2:     cols[3][r],
				VoffUpp2:  cols[4][r],
				VoffLow2:  cols[5][r],
				Thickness: cols[6][r],
				Z:         cols[7][r],
			})
		}
	}
	return plates, nil
}
