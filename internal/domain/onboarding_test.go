package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOnboardingRequest() *OnboardingRequest {
	return &OnboardingRequest{
		CompanyName:          " Acme ",
		ContactEmail:         "Owner@Acme.TEST",
		Industry:             "technology",
		AudienceDescription:  "Data teams",
		PrimaryCTA:           "Book a demo",
		NewsletterObjectives: []string{"Grow leads, Educate", "Educate"},
		ContactListName:      "contacts.csv",
		ContactList:          []byte("name,email\nA,a@b.co\n"),
	}
}

func TestOnboardingRequest_Validate(t *testing.T) {
	t.Run("valid request is normalized", func(t *testing.T) {
		r := validOnboardingRequest()
		require.NoError(t, r.Validate(0))
		assert.Equal(t, "Acme", r.CompanyName)
		assert.Equal(t, "owner@acme.test", r.ContactEmail)
		assert.Equal(t, []string{"Grow leads", "Educate"}, r.NewsletterObjectives)
	})

	tests := []struct {
		name    string
		mutate  func(r *OnboardingRequest)
		message string
	}{
		{"missing fields listed in order", func(r *OnboardingRequest) { r.CompanyName = ""; r.PrimaryCTA = " " }, "Missing required fields: company_name, primary_cta"},
		{"bad email", func(r *OnboardingRequest) { r.ContactEmail = "owner at acme" }, "Invalid email format"},
		{"bad website", func(r *OnboardingRequest) { r.WebsiteURL = "ftp://acme.test" }, "Please enter a valid URL starting with http:// or https://"},
		{"bad phone", func(r *OnboardingRequest) { r.Phone = "555-CALL" }, "Please enter a valid phone number"},
		{"missing csv", func(r *OnboardingRequest) { r.ContactListName = ""; r.ContactList = nil }, "Missing contact list CSV"},
		{"not csv", func(r *OnboardingRequest) { r.ContactListName = "contacts.txt" }, "Contact list must be a CSV file"},
		{"too large", func(r *OnboardingRequest) { r.ContactListSize = DefaultMaxCSVBytes + 1 }, "Contact list must be at most 5 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validOnboardingRequest()
			tt.mutate(r)
			err := r.Validate(0)
			require.Error(t, err)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}

	t.Run("custom size limit", func(t *testing.T) {
		r := validOnboardingRequest()
		err := r.Validate(4)
		require.Error(t, err)
	})
}

func TestOnboardingRequest_ToCompany(t *testing.T) {
	r := validOnboardingRequest()
	require.NoError(t, r.Validate(0))

	c := r.ToCompany("4a6d7e2c-3f1b-4c59-9f0e-0d1c2b3a4f5e")
	assert.Equal(t, CompanyStatusActive, c.Status)
	assert.Equal(t, "owner@acme.test", c.ContactEmail)
	assert.NoError(t, c.Validate())
}

func TestSplitObjectives(t *testing.T) {
	assert.Equal(t, []string{}, SplitObjectives(nil))
	assert.Equal(t, []string{"a", "b", "c"}, SplitObjectives([]string{"a,b", " c ", "a"}))
}
