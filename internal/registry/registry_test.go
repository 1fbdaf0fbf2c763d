package registry

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	log := logger.NewTestLogger()
	store := storage.NewLayout(afero.NewMemMapFs(), "uploads", "output", 50<<20, log)
	return New(store, log)
}

func TestCatalogBuilds(t *testing.T) {
	r := newTestRegistry(t)

	assert.Greater(t, r.Len(), 30)
	assert.Equal(t, r.Len(), len(r.List()))
}

func TestEveryEntryIsRunnable(t *testing.T) {
	r := newTestRegistry(t)

	for _, s := range r.List() {
		e, ok := r.Entry(s.ID)
		require.True(t, ok, s.ID)
		assert.NotNil(t, e.Run, s.ID)
		assert.NotEmpty(t, e.Descriptor.Name, s.ID)
		assert.NotEmpty(t, e.Descriptor.Category, s.ID)
		assert.GreaterOrEqual(t, e.Descriptor.MaxFiles, e.Descriptor.MinFiles, s.ID)
	}
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)

	list := r.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "pdf-merge", list[0].ID)

	// listing twice yields the same order
	again := r.List()
	for i := range list {
		assert.Equal(t, list[i].ID, again[i].ID)
	}
}

func TestDescribe(t *testing.T) {
	r := newTestRegistry(t)

	d, ok := r.Describe("pdf-merge")
	require.True(t, ok)
	assert.Equal(t, "PDF Merge", d.Name)
	assert.Equal(t, CategoryPDF, d.Category)
	assert.Equal(t, 2, d.MinFiles)
	assert.Equal(t, 10, d.MaxFiles)

	_, ok = r.Describe("no-such-tool")
	assert.False(t, ok)
}

func TestDescribeLocalized(t *testing.T) {
	r := newTestRegistry(t)

	d, ok := r.DescribeLocalized("pdf-merge", "es")
	require.True(t, ok)
	assert.Equal(t, "Unir PDF", d.Name)

	d, ok = r.DescribeLocalized("pdf-merge", "zh")
	require.True(t, ok)
	assert.Equal(t, "PDF 合并", d.Name)

	// labels are translated on a copied option slice
	d, ok = r.DescribeLocalized("image-resize", "es")
	require.True(t, ok)
	require.NotEmpty(t, d.Options)
	assert.Equal(t, "Ancho (px)", d.Options[0].Label)

	base, _ := r.Describe("image-resize")
	assert.Equal(t, "Width (px)", base.Options[0].Label, "localization must not mutate the catalog")
}

func TestDescribeLocalizedFallsBack(t *testing.T) {
	r := newTestRegistry(t)

	base, _ := r.Describe("pdf-merge")

	// unknown language
	d, ok := r.DescribeLocalized("pdf-merge", "fr")
	require.True(t, ok)
	assert.Equal(t, base.Name, d.Name)

	// known language, untranslated tool
	d, ok = r.DescribeLocalized("uuid-generator", "es")
	require.True(t, ok)
	untranslated, _ := r.Describe("uuid-generator")
	assert.Equal(t, untranslated.Name, d.Name)

	// region subtags match the base language
	d, ok = r.DescribeLocalized("pdf-merge", "es-MX")
	require.True(t, ok)
	assert.Equal(t, "Unir PDF", d.Name)

	_, ok = r.DescribeLocalized("no-such-tool", "es")
	assert.False(t, ok)
}

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		query, accept, want string
	}{
		{"es", "", "es"},
		{"ES", "", "es"},
		{"zh-CN", "", "zh"},
		{"", "es-MX,es;q=0.9,en;q=0.8", "es"},
		{"", "zh;q=0.9", "zh"},
		{"fr", "es", "fr"},
		{"", "", "en"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveLanguage(tc.query, tc.accept),
			"query=%q accept=%q", tc.query, tc.accept)
	}
}

func TestColorAdjustAndMergeRegistered(t *testing.T) {
	r := newTestRegistry(t)

	d, ok := r.Describe("image-color-adjust")
	require.True(t, ok)
	assert.Equal(t, "Image Color Adjust", d.Name)
	assert.Equal(t, CategoryImage, d.Category)
	assert.Equal(t, 1, d.MinFiles)
	require.Len(t, d.Options, 3)
	for _, o := range d.Options {
		require.NotNil(t, o.Min, o.Name)
		require.NotNil(t, o.Max, o.Name)
		assert.Equal(t, float64(-100), *o.Min, o.Name)
		assert.Equal(t, float64(100), *o.Max, o.Name)
	}

	d, ok = r.Describe("video-merge")
	require.True(t, ok)
	assert.Equal(t, "Video Merge", d.Name)
	assert.Equal(t, CategoryVideo, d.Category)
	assert.Equal(t, 2, d.MinFiles)
	assert.Equal(t, 10, d.MaxFiles)
}
