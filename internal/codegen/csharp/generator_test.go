package csharp

import (
	"strings"
	"testing"

	"github.com/cloudmodelgen/ctgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleType() schema.ContentType {
	return schema.ContentType{
		System: schema.System{ID: "b2c14f2c-6467-460b-a70b-bca17972a33a", Name: "Article", Codename: "article"},
		Elements: schema.Elements{
			{Codename: "title", Type: schema.ElementText, Name: "Title"},
			{Codename: "summary", Type: schema.ElementRichText, Name: "Summary"},
			{Codename: "post_date", Type: schema.ElementDateTime, Name: "Post date"},
			{Codename: "reading_time", Type: schema.ElementNumber, Name: "Reading time"},
			{Codename: "teaser_image", Type: schema.ElementAsset, Name: "Teaser image"},
			{Codename: "category", Type: schema.ElementMultipleChoice, Name: "Category"},
			{Codename: "related_articles", Type: schema.ElementModularContent, Name: "Related articles"},
			{Codename: "personas", Type: schema.ElementTaxonomy, Name: "Personas"},
			{Codename: "url_pattern", Type: schema.ElementURLSlug, Name: "URL pattern"},
			{Codename: "color", Type: schema.ElementCustom, Name: "Color"},
			{Codename: "writing_tips", Type: schema.ElementGuidelines, Name: "Writing tips"},
		},
	}
}

func TestGenerator_Defaults(t *testing.T) {
	// Test: Empty namespace falls back to the default
	g := NewGenerator("", false)
	assert.Equal(t, DefaultNamespace, g.Namespace())
	assert.Equal(t, "csharp", g.Language())
	assert.Equal(t, ".cs", g.FileExtension())
	assert.True(t, g.SupportsPartials())

	assert.Equal(t, "MyApp.Models", NewGenerator("MyApp.Models", false).Namespace())
}

func TestGenerator_FileNames(t *testing.T) {
	g := NewGenerator("", true)

	assert.Equal(t, "Article", g.ClassName("article"))
	assert.Equal(t, "HostedVideo", g.ClassName("hosted_video"))
	assert.Equal(t, "_404Page", g.ClassName("404_page"))

	assert.Equal(t, "Article.cs", g.ModelFileName("Article", ""))
	assert.Equal(t, "Article.Generated.cs", g.ModelFileName("Article", "Generated"))
	assert.Equal(t, "CustomTypeProvider.cs", g.TypeProviderFileName())
}

func TestGenerator_GenerateModel(t *testing.T) {
	// Test: Every value element becomes a typed property with a codename constant
	g := NewGenerator("MyApp.Models", false)

	code, err := g.GenerateModel(articleType(), false)
	require.NoError(t, err)

	result := string(code)
	assert.True(t, strings.HasPrefix(result, "// This code was generated by content-types-generator."))
	assert.Contains(t, result, "using KenticoCloud.Delivery;")
	assert.Contains(t, result, "namespace MyApp.Models\n{")
	assert.Contains(t, result, "    public class Article\n    {")
	assert.NotContains(t, result, "partial class")

	assert.Contains(t, result, `public const string Codename = "article";`)
	assert.Contains(t, result, `public const string PostDateCodename = "post_date";`)

	expected := []string{
		"public string Title { get; set; }",
		"public string Summary { get; set; }",
		"public DateTime? PostDate { get; set; }",
		"public decimal? ReadingTime { get; set; }",
		"public IEnumerable<Asset> TeaserImage { get; set; }",
		"public IEnumerable<MultipleChoiceOption> Category { get; set; }",
		"public IEnumerable<object> RelatedArticles { get; set; }",
		"public IEnumerable<TaxonomyTerm> Personas { get; set; }",
		"public string UrlPattern { get; set; }",
		"public string Color { get; set; }",
		"public ContentItemSystemAttributes System { get; set; }",
	}
	for _, line := range expected {
		assert.Contains(t, result, line)
	}

	// Properties carry the element name as their summary
	assert.Contains(t, result, "        /// <summary>\n        /// Post date\n        /// </summary>\n        public DateTime? PostDate { get; set; }\n")
	assert.Contains(t, result, "/// URL pattern\n")

	// Guidelines carry no value
	assert.NotContains(t, result, "WritingTips")
	assert.NotContains(t, result, "Writing tips")

	// Properties keep the element order of the content type
	assert.Less(t, strings.Index(result, "PostDate {"), strings.Index(result, "ReadingTime {"))
	assert.Less(t, strings.Index(result, "ReadingTime {"), strings.Index(result, "TeaserImage {"))
}

func TestGenerator_GenerateModel_Structured(t *testing.T) {
	// Test: Structured mode types rich text as IRichTextContent
	g := NewGenerator("", false)

	code, err := g.GenerateModel(articleType(), true)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "public IRichTextContent Summary { get; set; }")
	assert.Contains(t, result, "public string Title { get; set; }")
}

func TestGenerator_GenerateModel_Partial(t *testing.T) {
	// Test: Partials produce a partial class and an empty hand-editable half
	g := NewGenerator("", true)

	code, err := g.GenerateModel(articleType(), false)
	require.NoError(t, err)
	assert.Contains(t, string(code), "public partial class Article")

	custom, err := g.GenerateCustomPartial(articleType())
	require.NoError(t, err)

	expected := `using System;
using System.Collections.Generic;
using KenticoCloud.Delivery;

namespace KenticoCloudModels
{
    public partial class Article
    {
    }
}
`
	assert.Equal(t, expected, string(custom))
}

func TestGenerator_NameClashes(t *testing.T) {
	// Test: Clashing element names get numeric suffixes
	ct := schema.ContentType{
		System: schema.System{Name: "Hero", Codename: "hero"},
		Elements: schema.Elements{
			{Codename: "system", Type: schema.ElementText},
			{Codename: "codename", Type: schema.ElementText},
			{Codename: "hero", Type: schema.ElementText},
			{Codename: "post_date", Type: schema.ElementText},
			{Codename: "postDate", Type: schema.ElementText},
			{Codename: "title", Type: schema.ElementText},
			{Codename: "title_codename", Type: schema.ElementText},
		},
	}

	code, err := NewGenerator("", false).GenerateModel(ct, false)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "public string System2 { get; set; }")
	assert.Contains(t, result, "public string Codename2 { get; set; }")
	assert.Contains(t, result, "public string Hero2 { get; set; }")
	assert.Contains(t, result, "public string PostDate { get; set; }")
	assert.Contains(t, result, "public string PostDate2 { get; set; }")
	assert.Contains(t, result, `public const string PostDate2Codename = "postDate";`)
	assert.Contains(t, result, `public const string TitleCodename = "title";`)
	assert.Contains(t, result, "public string TitleCodename2 { get; set; }")
	assert.Equal(t, 1, strings.Count(result, " System {"))
}

func TestGenerator_MissingCodename(t *testing.T) {
	g := NewGenerator("", true)

	_, err := g.GenerateModel(schema.ContentType{System: schema.System{Name: "Broken"}}, false)
	assert.ErrorContains(t, err, `content type "Broken" has no codename`)

	_, err = g.GenerateCustomPartial(schema.ContentType{})
	assert.Error(t, err)
}

func TestGenerator_GenerateTypeProvider(t *testing.T) {
	// Test: The provider maps each model class to its codename, sorted by codename
	g := NewGenerator("MyApp.Models", false)
	types := []schema.ContentType{
		{System: schema.System{Codename: "hosted_video"}},
		{System: schema.System{Codename: "article"}},
		{System: schema.System{Codename: `quote"d`}},
	}

	code, err := g.GenerateTypeProvider(types, nil)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "using System.Linq;")
	assert.Contains(t, result, "public class CustomTypeProvider : ICodeFirstTypeProvider")
	assert.Contains(t, result, `{typeof(Article), "article"},`)
	assert.Contains(t, result, `{typeof(HostedVideo), "hosted_video"},`)
	assert.Contains(t, result, `{typeof(QuoteD), "quote\"d"},`)
	assert.Less(t, strings.Index(result, "typeof(Article)"), strings.Index(result, "typeof(HostedVideo)"))
	assert.Contains(t, result, "public Type GetType(string contentType)")
	assert.Contains(t, result, "public string GetCodename(Type contentType)")

	// Input order is left untouched
	assert.Equal(t, "hosted_video", types[0].System.Codename)
}
