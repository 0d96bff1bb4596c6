package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRequirements(t *testing.T) {
	t.Run("Structured qualifications win", func(t *testing.T) {
		structured := []string{"5 years of Go", "SQL", "Kubernetes", "gRPC", "Kafka", "Terraform"}
		got := ExtractRequirements("ignored description", structured)
		assert.Equal(t, structured[:5], got, "should cap structured list at five entries")
	})

	t.Run("Sentences with requirement signals are kept", func(t *testing.T) {
		desc := "<p>We are a fun team. " +
			"You need three years of experience building backend services. " +
			"Knowledge of PostgreSQL and message queues is essential here. " +
			"Free snacks every day.</p>"
		got := ExtractRequirements(desc, nil)
		assert.Equal(t, []string{
			"You need three years of experience building backend services",
			"Knowledge of PostgreSQL and message queues is essential here",
		}, got)
	})

	t.Run("Too short and too long sentences are dropped", func(t *testing.T) {
		long := "Experience with " + strings.Repeat("very ", 50) + "large systems"
		desc := "Has experience. " + long + ". Nothing else relevant."
		got := ExtractRequirements(desc, nil)
		assert.Equal(t, []string{"See full job description for requirements"}, got)
	})

	t.Run("Only first four signal sentences are considered", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 6; i++ {
			sb.WriteString("Several years of experience with distributed systems required. ")
		}
		got := ExtractRequirements(sb.String(), nil)
		assert.Len(t, got, 4)
	})

	t.Run("Empty description yields fallback", func(t *testing.T) {
		got := ExtractRequirements("", nil)
		assert.Equal(t, []string{"See full job description for requirements"}, got)
	})
}

func TestExtractBenefits(t *testing.T) {
	t.Run("Structured benefits win", func(t *testing.T) {
		structured := []string{"Gym", "Snacks", "Dog office", "Sauna", "Bikes", "Boats"}
		got := ExtractBenefits("ignored", structured)
		assert.Equal(t, structured[:5], got)
	})

	t.Run("Known phrases map to canonical labels", func(t *testing.T) {
		desc := "<p>We offer health insurance, a 401k match and unlimited PTO.</p>"
		got := ExtractBenefits(desc, nil)
		assert.Equal(t, []string{"Health Insurance", "401(k)", "Paid Time Off"}, got)
	})

	t.Run("Group order is fixed regardless of text order", func(t *testing.T) {
		desc := "stock options for everyone, plus medical cover"
		got := ExtractBenefits(desc, nil)
		assert.Equal(t, []string{"Health Insurance", "Equity/Stock Options"}, got)
	})

	t.Run("Work from home counts as remote work", func(t *testing.T) {
		got := ExtractBenefits("flexible work from home policy", nil)
		assert.Equal(t, []string{"Remote Work"}, got)
	})

	t.Run("No phrases yields fallback", func(t *testing.T) {
		got := ExtractBenefits("we pay in exposure", nil)
		assert.Equal(t, []string{"See job posting for full benefits"}, got)
	})
}
