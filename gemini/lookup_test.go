package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Lookup_ReturnsErrorWhenNameEmpty(t *testing.T) {
	t.Parallel()

	l := gemini.NewLookup(nil) // nil client ok for this test

	_, err := l.Lookup(context.Background(), prospect.Subject{Company: "Acme Corp"})

	require.Error(t, err)
	assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	assert.Contains(t, prospect.ErrorMessage(err), "name required")
}

func TestLookup_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Gemini Search", gemini.NewLookup(nil).Name())
}

func TestBuildConfig_UsesGoogleSearchAndJSONSchema(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.Len(t, config.Tools, 1)
	assert.NotNil(t, config.Tools[0].GoogleSearch)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Contains(t, config.ResponseSchema.Properties, "contacts")
	require.NotNil(t, config.SystemInstruction)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Never guess")
}

func TestBuildPrompt_IncludesSubject(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt(prospect.Subject{Name: " Jane  Doe ", Company: "Acme Corp", Domain: "acme.com"})

	assert.Contains(t, prompt, "Name: Jane Doe\n")
	assert.Contains(t, prompt, "Company: Acme Corp\n")
	assert.Contains(t, prompt, "Company domain: acme.com\n")
}

func TestBuildPrompt_OmitsMissingCompany(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt(prospect.Subject{Name: "Jane Doe"})

	assert.NotContains(t, prompt, "Company:")
	assert.NotContains(t, prompt, "Company domain:")
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("maps confidence levels and drops empty contacts", func(t *testing.T) {
		t.Parallel()

		text := `{"contacts":[
			{"first_name":"Jane","last_name":"Doe","email":"jane@acme.com","phone":"","company":"Acme Corp","title":"CEO","linkedin_url":"","confidence":"high"},
			{"first_name":"Jane","last_name":"Doe","email":"","phone":" 555-123-4567 ","company":"","title":"","linkedin_url":"","confidence":"Medium"},
			{"first_name":"Jane","last_name":"Doe","email":"","phone":"","company":"Acme Corp","title":"","linkedin_url":"","confidence":"high"},
			{"first_name":"","last_name":"","email":"info@acme.com","phone":"","company":"","title":"","linkedin_url":"","confidence":"unsure"}
		]}`

		got, err := gemini.ParseResponse(text, "Gemini Search", gemini.DefaultConfidences())

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, prospect.LookupResult{
			Email: "jane@acme.com", FirstName: "Jane", LastName: "Doe", Company: "Acme Corp", Title: "CEO",
			Confidence: 0.75, Source: "Gemini Search",
		}, got[0])
		assert.Equal(t, "555-123-4567", got[1].Phone)
		assert.Equal(t, 0.6, got[1].Confidence)
		assert.Equal(t, 0.4, got[2].Confidence)
	})

	t.Run("tolerates code fence", func(t *testing.T) {
		t.Parallel()

		text := "```json\n{\"contacts\":[{\"email\":\"jane@acme.com\",\"phone\":\"\",\"confidence\":\"low\"}]}\n```"

		got, err := gemini.ParseResponse(text, "Gemini Search", gemini.Confidences{Low: 0.3})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0.3, got[0].Confidence)
	})

	t.Run("returns error on invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseResponse("I could not find anything.", "Gemini Search", gemini.DefaultConfidences())

		assert.ErrorContains(t, err, "parse structured json")
	})
}
