package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

const instructions = `You are a sales analyst for a small company.
Answer the question using only the figures in the briefing.
If the briefing does not contain the answer, say so plainly.
Amounts are in the company's currency.`

// OpenAIModel answers through the OpenAI Responses API with a strict JSON
// schema derived from ModelAnswer.
type OpenAIModel struct {
	client *openai.Client
	model  string
	schema map[string]any
}

// NewOpenAIModel creates a model client. baseURL may be empty.
func NewOpenAIModel(apiKey, model, baseURL string, opts ...option.RequestOption) (*OpenAIModel, error) {
	schema, err := answerSchema()
	if err != nil {
		return nil, err
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(append(reqOpts, opts...)...)
	return &OpenAIModel{client: &client, model: model, schema: schema}, nil
}

// Answer implements Model
func (m *OpenAIModel) Answer(ctx context.Context, question, briefing string) (ModelAnswer, error) {
	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(m.model),
		Instructions: param.NewOpt(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(fmt.Sprintf("Briefing:\n%s\nQuestion: %s", briefing, question)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "sales_answer",
					Strict:      param.NewOpt(true),
					Schema:      m.schema,
					Description: param.NewOpt("An answer to a question about sales figures"),
				},
			},
		},
	}

	resp, err := m.client.Responses.New(ctx, params)
	if err != nil {
		return ModelAnswer{}, fmt.Errorf("openai responses: %w", err)
	}
	content := resp.OutputText()
	if content == "" {
		return ModelAnswer{}, fmt.Errorf("openai responses: empty output")
	}

	var out ModelAnswer
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return ModelAnswer{}, fmt.Errorf("parse model answer: %w", err)
	}
	return out, nil
}

func answerSchema() (map[string]any, error) {
	r := jsonschema.Reflector{AllowAdditionalProperties: false, DoNotReference: true}
	raw, err := json.Marshal(r.Reflect(ModelAnswer{}))
	if err != nil {
		return nil, fmt.Errorf("marshal answer schema: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("decode answer schema: %w", err)
	}
	return schema, nil
}
