package table

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/soypat/multiwing/airfoil"
	"github.com/soypat/multiwing/span"
	"github.com/soypat/multiwing/wing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	upperCSV = `u1z,u1y,u2z,u2y,u3z,u3y,u4z,u4y,u5z,u5y,u6z,u6y
0,0.2,0,0.2,0,0.2,0,0.2,0,0.2,0,0.2
1,0.3,1,0.3,1,0.3,1,0.3,1,0.3,1,0.3
`
	// Column order is free and missing cells are allowed.
	lowerCSV = `l6y,l6z,l1z,l1y,l2z,l2y,l3z,l3y,l4z,l4y,l5z,l5y
0.1,0,0,0.1,0,0.1,0,0.1,0,0.1,0,0.1
0.1,1,0.5,NaN,1,0.1,1,0.1,1,0.1,1,0.1
,,1,0.1,,,,,,,,
`
	paramsCSV = `az,ay,xoffz,xoffy,yoffz,yoffy,ovlpz,ovlpy,slz,sly,sclz,scly
0,0,0,0,0,0,0,0.1,0,0.05,0,1
1,0.1,1,0,1,0,1,0.1,1,0.05,1,0.8
`
	endplateCSV = `z,Thickness,HOff1,VoffUpp1,VoffLow1,HOff2,VoffUpp2,VoffLow2
0,0.01,0.1,0.2,0.3,0.4,0.5,0.6
1,0.02,1.1,1.2,1.3,1.4,1.5,1.6
`
)

func testCase() fstest.MapFS {
	fsys := fstest.MapFS{
		"Endplates/b.csv":     {Data: []byte(endplateCSV)},
		"Endplates/a.csv":     {Data: []byte("HOff1,VoffUpp1,VoffLow1,HOff2,VoffUpp2,VoffLow2,Thickness,z\n9,9,9,9,9,9,0.5,0.5\n")},
		"Endplates/notes.txt": {Data: []byte("ignored")},
		"Wings/.DS_Store":     {Data: []byte{}},
	}
	for _, n := range []string{"1", "2"} {
		fsys["Wings/"+n+"/UpperInput.csv"] = &fstest.MapFile{Data: []byte(upperCSV)}
		fsys["Wings/"+n+"/LowerInput.csv"] = &fstest.MapFile{Data: []byte(lowerCSV)}
		fsys["Wings/"+n+"/Parameters.csv"] = &fstest.MapFile{Data: []byte(paramsCSV)}
	}
	return fsys
}

func TestLoadCaseFS(t *testing.T) {
	c, err := LoadCaseFS(testCase())
	require.NoError(t, err)
	require.Len(t, c.Elements, 2)

	e := c.Elements[0]
	assert.Equal(t, []float64{0, 1}, e[0].Z)
	assert.Equal(t, []float64{0.2, 0.3}, e[0].V)

	l1 := e[6]
	require.Len(t, l1.Z, 3)
	assert.Equal(t, []float64{0, 0.5, 1}, l1.Z)
	assert.Equal(t, 0.1, l1.V[0])
	assert.True(t, math.IsNaN(l1.V[1]), "NaN text is a missing value")
	assert.Equal(t, 0.1, l1.V[2])

	l6 := e[11]
	assert.Equal(t, 0.0, l6.Z[0])
	assert.True(t, math.IsNaN(l6.Z[2]), "empty cell is a missing value")

	scl := e[airfoil.FieldScale]
	assert.Equal(t, []float64{1, 0.8}, scl.V)

	// Lexical order: a.csv before b.csv.
	require.Len(t, c.Endplates, 3)
	assert.Equal(t, wing.Endplate{HOff1: 9, VoffUpp1: 9, VoffLow1: 9, HOff2: 9, VoffUpp2: 9, VoffLow2: 9, Thickness: 0.5, Z: 0.5}, c.Endplates[0])
	assert.Equal(t, wing.Endplate{HOff1: 0.1, VoffUpp1: 0.2, VoffLow1: 0.3, HOff2: 0.4, VoffUpp2: 0.5, VoffLow2: 0.6, Thickness: 0.01, Z: 0}, c.Endplates[1])
	assert.Equal(t, 1.0, c.Endplates[2].Z)

	// Loaded tables fit without configuration errors.
	g, err := span.NewGrid(c.Elements)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Elements())
	m := g.Eval(0.5)
	assert.InDelta(t, 0.9, m[0].Scale(), 1e-9)
}

func TestLoadCaseNoEndplates(t *testing.T) {
	fsys := testCase()
	for name := range fsys {
		if strings.HasPrefix(name, "Endplates/") {
			delete(fsys, name)
		}
	}
	c, err := LoadCaseFS(fsys)
	require.NoError(t, err)
	assert.Len(t, c.Elements, 2)
	assert.Empty(t, c.Endplates)
}

func TestLoadCaseErrors(t *testing.T) {
	fsys := testCase()
	fsys["Wings/1/Parameters.csv"] = &fstest.MapFile{Data: []byte("az,ay\n0,0\n")}
	_, err := LoadCaseFS(fsys)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "Wings/1/Parameters.csv")
	assert.ErrorContains(t, err, `"xoffz"`)

	fsys = testCase()
	fsys["Wings/1/UpperInput.csv"] = &fstest.MapFile{Data: []byte(strings.Replace(upperCSV, "0.3,1,0.3", "0.3,1,abc", 1))}
	_, err = LoadCaseFS(fsys)
	assert.ErrorIs(t, err, ErrBadValue)
	assert.ErrorContains(t, err, "row 3")

	for _, cell := range []string{"inf", "-Inf", "+infinity"} {
		fsys = testCase()
		fsys["Wings/1/UpperInput.csv"] = &fstest.MapFile{Data: []byte(strings.Replace(upperCSV, "0.3,1,0.3", "0.3,1,"+cell, 1))}
		_, err = LoadCaseFS(fsys)
		assert.ErrorIs(t, err, ErrBadValue, cell)
	}

	fsys = testCase()
	for name, f := range fsys {
		if strings.HasPrefix(name, "Wings/2/") {
			delete(fsys, name)
			fsys["Wings/3/"+filepath.Base(name)] = f
		}
	}
	_, err = LoadCaseFS(fsys)
	assert.ErrorIs(t, err, ErrElementNumbering)

	_, err = LoadCaseFS(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadCaseDir(t *testing.T) {
	dir := t.TempDir()
	for name, f := range testCase() {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, f.Data, 0o644))
	}
	c, err := LoadCase(dir)
	require.NoError(t, err)
	assert.Len(t, c.Elements, 2)
	assert.Len(t, c.Endplates, 3)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, wing.DefaultConfig(), cfg)

	cfg, err = ParseConfig(strings.NewReader("sections: 12\ndomain:\n  enabled: true\n  width: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Sections)
	assert.Equal(t, 1.5, cfg.Scale, "absent fields keep defaults")
	assert.True(t, cfg.Domain.Enabled)
	assert.Equal(t, 2.0, cfg.Domain.Width)
	assert.Equal(t, 5.0, cfg.Domain.Height)

	_, err = ParseConfig(strings.NewReader("sectons: 12\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = ParseConfig(strings.NewReader("scale: -1\n"))
	assert.ErrorIs(t, err, wing.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(p, []byte("output: out.stl\nscale: 1\n"), 0o644))
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "out.stl", cfg.Output)
	assert.Equal(t, 1.0, cfg.Scale)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
