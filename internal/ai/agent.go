package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"zuno-agent/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// Agent is the language-understanding backend behind core.IntentClassifier.
// It is stateless: a single Agent may be used from any number of goroutines.
type Agent struct {
	client *openai.Client
	model  shared.ResponsesModel
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, model: shared.ResponsesModel(shared.ChatModelGPT4o)}
}

const intentPrompt = `You are the ambient intelligence agent of a small shop.
Your task is to autonomously filter "Gossip" from "Business" in Hinglish shop floor conversations.

CRITICAL RULES:
1. IGNORE casual chatter (e.g., "Mausam kaisa hai?", "Aur batao", "Bache kaise hain?") — set is_transaction to false.
2. EXTRACT structured financial data only when a transaction is clearly described. When uncertain, set is_transaction to false. Never guess.
3. HANDLE Hinglish code-switching (Hindi + English) accurately.
4. DISTINGUISH payment modes: "Cash" (nagad) for an immediate sale, "Credit" (udhaar) when a named customer owes the shop, "Purchase" when the shop bought stock from a supplier.
5. If the utterance states a TOTAL amount rather than a per-unit price, put it in total and leave unit_price 0.

Examples:
"Ramesh ko 2 kilo chini udhaar di 80 rupaye ki" -> {is_transaction: true, item: "Chini", quantity: 2, unit_price: 0, total: 80, payment_mode: "Credit", counterparty: "Ramesh"}
"Ek bread ka packet becha 30 rupaye cash mein" -> {is_transaction: true, item: "Bread", quantity: 1, unit_price: 30, payment_mode: "Cash"}
"Supplier se 5 packet chai patti kharidi 150 rupaye mein" -> {is_transaction: true, item: "Chai Patti", quantity: 5, total: 150, payment_mode: "Purchase", counterparty: "Supplier"}
"Bhai aaj garmi bahut hai" -> {is_transaction: false}

Utterance: %s`

// Classify sends the utterance through the model with a strict JSON schema
// and returns the extracted candidate, or nil when no financial intent was
// detected. Backend and parse failures are returned as errors; the caller's
// policy is to treat them the same as nil.
func (a *Agent) Classify(ctx context.Context, text string) (*core.TransactionCandidate, error) {
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: a.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(fmt.Sprintf(intentPrompt, text)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "intent_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Financial intent extracted from a shop floor utterance"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var extraction core.IntentExtraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}

	return extraction.Candidate(), nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.IntentExtraction
	return reflector.Reflect(v)
}
