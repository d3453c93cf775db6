package analysis

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendTypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/smithy-go"
)

// Method labels every stored record with how the analysis was produced.
const Method = "Amazon Comprehend (Statistical)"

// ComprehendAPI is the subset of the Comprehend client used here.
type ComprehendAPI interface {
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
	DetectEntities(ctx context.Context, params *comprehend.DetectEntitiesInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectEntitiesOutput, error)
}

// Company is an ORGANIZATION entity reported by Comprehend.
type Company struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

// Findings is what a successful analysis contributes to a stored record.
type Findings struct {
	OverallSentiment  string             `json:"overall_sentiment"`
	SentimentScores   map[string]float32 `json:"sentiment_scores"`
	CompaniesDetected []Company          `json:"companies_detected"`
}

// Analyzer derives sentiment and companies from a text. A non-nil error means
// the analysis is unavailable for this text; callers decide what to do with it.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Findings, error)
}

type ComprehendAnalyzer struct {
	client       ComprehendAPI
	languageCode comprehendTypes.LanguageCode
}

func NewComprehendAnalyzer(client ComprehendAPI) *ComprehendAnalyzer {
	return &ComprehendAnalyzer{
		client:       client,
		languageCode: comprehendTypes.LanguageCodeEn,
	}
}

// Analyze runs DetectSentiment and then DetectEntities. Entity detection is
// not attempted when sentiment detection fails. Service errors are returned
// unwrapped so their text can be recorded as-is.
func (a *ComprehendAnalyzer) Analyze(ctx context.Context, text string) (*Findings, error) {
	sentResp, err := a.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: a.languageCode,
	})
	if err != nil {
		return nil, err
	}

	entResp, err := a.client.DetectEntities(ctx, &comprehend.DetectEntitiesInput{
		Text:         aws.String(text),
		LanguageCode: a.languageCode,
	})
	if err != nil {
		return nil, err
	}

	return &Findings{
		OverallSentiment:  string(sentResp.Sentiment),
		SentimentScores:   sentimentScores(sentResp.SentimentScore),
		CompaniesDetected: companies(entResp.Entities),
	}, nil
}

func sentimentScores(score *comprehendTypes.SentimentScore) map[string]float32 {
	scores := make(map[string]float32)
	if score == nil {
		return scores
	}
	scores["Positive"] = aws.ToFloat32(score.Positive)
	scores["Negative"] = aws.ToFloat32(score.Negative)
	scores["Neutral"] = aws.ToFloat32(score.Neutral)
	scores["Mixed"] = aws.ToFloat32(score.Mixed)
	return scores
}

func companies(entities []comprehendTypes.Entity) []Company {
	result := []Company{}
	for _, entity := range entities {
		if entity.Type != comprehendTypes.EntityTypeOrganization {
			continue
		}
		result = append(result, Company{
			Name:       aws.ToString(entity.Text),
			Confidence: aws.ToFloat32(entity.Score),
		})
	}
	return result
}

// ErrorCode returns the AWS error code carried by err (for example
// "SubscriptionRequiredException"), or "" when err is not an API error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
