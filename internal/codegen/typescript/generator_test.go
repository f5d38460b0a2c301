package typescript

import (
	"strings"
	"testing"

	"github.com/cloudmodelgen/ctgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleType() schema.ContentType {
	return schema.ContentType{
		System: schema.System{Name: "Article", Codename: "article"},
		Elements: schema.Elements{
			{Codename: "title", Type: schema.ElementText, Name: "Title"},
			{Codename: "body_copy", Type: schema.ElementRichText, Name: "Body copy"},
			{Codename: "post_date", Type: schema.ElementDateTime, Name: "Post date"},
			{Codename: "reading_time", Type: schema.ElementNumber, Name: "Reading time"},
			{Codename: "teaser_image", Type: schema.ElementAsset},
			{Codename: "related_articles", Type: schema.ElementModularContent, Name: "Related articles"},
			{Codename: "personas", Type: schema.ElementTaxonomy, Name: "Personas"},
			{Codename: "instructions", Type: schema.ElementGuidelines, Name: "Instructions"},
		},
	}
}

func TestGenerator_Basics(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "typescript", g.Language())
	assert.Equal(t, ".ts", g.FileExtension())
	assert.False(t, g.SupportsPartials())

	assert.Equal(t, "HostedVideo", g.ClassName("hosted_video"))
	assert.Equal(t, "hosted-video.ts", g.ModelFileName("HostedVideo", ""))
	assert.Equal(t, "hosted-video.generated.ts", g.ModelFileName("HostedVideo", "Generated"))
	assert.Equal(t, "content-type-map.ts", g.TypeProviderFileName())

	_, err := g.GenerateCustomPartial(articleType())
	assert.Error(t, err)
}

func TestGenerator_GenerateModel(t *testing.T) {
	// Test: Generate an interface with camelCase properties in element order
	g := NewGenerator()

	code, err := g.GenerateModel(articleType(), false)
	require.NoError(t, err)

	expected := `// This file was generated by content-types-generator. Do not edit it by hand.

export const ArticleCodename = 'article';

/** Article */
export interface Article {
  /** Title */
  title: string;
  /** Body copy */
  bodyCopy: string;
  /** Post date */
  postDate: string | null;
  /** Reading time */
  readingTime: number | null;
  teaserImage: string[];
  /** Related articles */
  relatedArticles: string[];
  /** Personas */
  personas: string[];
}
`
	assert.Equal(t, expected, string(code))
}

func TestGenerator_GenerateModel_Structured(t *testing.T) {
	// Test: Structured mode types rich text and linked items
	code, err := NewGenerator().GenerateModel(articleType(), true)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "bodyCopy: { html: string; linkedItemCodenames: string[] };")
	assert.Contains(t, result, "relatedArticles: unknown[];")
	assert.Contains(t, result, "teaserImage: string[];")
}

func TestGenerator_GenerateModel_Names(t *testing.T) {
	// Test: Awkward codenames still produce valid, unique identifiers
	ct := schema.ContentType{
		System: schema.System{Name: "It's */ odd", Codename: "2nd_page"},
		Elements: schema.Elements{
			{Codename: "post_date", Type: schema.ElementText},
			{Codename: "postDate", Type: schema.ElementText},
			{Codename: "3d_model", Type: schema.ElementText},
		},
	}

	code, err := NewGenerator().GenerateModel(ct, false)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "export const _2ndPageCodename = '2nd_page';")
	assert.Contains(t, result, "export interface _2ndPage {")
	assert.Contains(t, result, "/** It's * / odd */")
	assert.Contains(t, result, "  postDate: string;")
	assert.Contains(t, result, "  postDate2: string;")
	assert.Contains(t, result, "  _3dModel: string;")

	_, err = NewGenerator().GenerateModel(schema.ContentType{}, false)
	assert.Error(t, err)
}

func TestGenerator_GenerateTypeProvider(t *testing.T) {
	// Test: The map imports each model from its file and lists every codename
	g := NewGenerator()
	types := []schema.ContentType{
		{System: schema.System{Codename: "hosted_video"}},
		{System: schema.System{Codename: "article"}},
	}
	files := map[string]string{
		"article":      "article.generated.ts",
		"hosted_video": "hosted-video.generated.ts",
	}

	code, err := g.GenerateTypeProvider(types, files)
	require.NoError(t, err)

	expected := `// This file was generated by content-types-generator. Do not edit it by hand.

import type { Article } from './article.generated';
import type { HostedVideo } from './hosted-video.generated';

/** Maps content type codenames to their models */
export interface ContentTypeMap {
  'article': Article;
  'hosted_video': HostedVideo;
}

export type ContentTypeCodename = keyof ContentTypeMap;

export const CONTENT_TYPE_CODENAMES: readonly ContentTypeCodename[] = [
  'article',
  'hosted_video',
];

export function isContentTypeCodename(value: string): value is ContentTypeCodename {
  return (CONTENT_TYPE_CODENAMES as readonly string[]).includes(value);
}
`
	assert.Equal(t, expected, string(code))
}

func TestGenerator_GenerateTypeProvider_MissingFile(t *testing.T) {
	// Test: Models without a known file are imported from their default file name
	code, err := NewGenerator().GenerateTypeProvider([]schema.ContentType{
		{System: schema.System{Codename: "o'brien"}},
	}, nil)
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "import type { OBrien } from './obrien';")
	assert.Contains(t, result, `'o\'brien': OBrien;`)
	assert.True(t, strings.HasSuffix(result, "}\n"))
}
