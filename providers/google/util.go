package google

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/wonton/schema"
	"google.golang.org/genai"
)

// convertGenAIResponse converts a GenAI response to an llm.Response
func convertGenAIResponse(resp *genai.GenerateContentResponse, model string) (*llm.Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from google genai")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("no content in response")
	}

	var content []llm.Content
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			content = append(content, &llm.TextContent{Text: part.Text})
		} else if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("error marshaling function call args: %w", err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				// Gemini does not always assign call IDs, but the
				// conversation needs one to pair results with calls.
				id = generateToolCallID(part.FunctionCall.Name, len(content))
			}
			content = append(content, &llm.ToolUseContent{
				ID:    id,
				Name:  part.FunctionCall.Name,
				Input: json.RawMessage(args),
			})
		} else {
			// Handle other types as text (fallback)
			content = append(content, &llm.TextContent{Text: fmt.Sprintf("%v", part)})
		}
	}

	var usage llm.Usage
	if resp.UsageMetadata != nil {
		usage = llm.Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}

	response := &llm.Response{
		ID:      fmt.Sprintf("google_%d", candidate.Index),
		Model:   model,
		Role:    llm.Assistant,
		Content: content,
		Usage:   usage,
	}

	switch candidate.FinishReason {
	case genai.FinishReasonStop:
		response.StopReason = "stop"
	case genai.FinishReasonMaxTokens:
		response.StopReason = "max_tokens"
	default:
		response.StopReason = "other"
	}

	return response, nil
}

// generateToolCallID generates a stable ID for tool calls that arrive
// without one
func generateToolCallID(toolName string, index int) string {
	return fmt.Sprintf("call_%s_%d", toolName, index)
}

// convertToolUseToFunctionCall converts an llm.ToolUseContent back to GenAI FunctionCall format
func convertToolUseToFunctionCall(toolUse *llm.ToolUseContent) (*genai.Part, error) {
	if toolUse == nil {
		return nil, fmt.Errorf("tool use is nil")
	}

	var args map[string]any
	if len(toolUse.Input) > 0 {
		if err := json.Unmarshal(toolUse.Input, &args); err != nil {
			return nil, fmt.Errorf("error unmarshaling tool input: %w", err)
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	return &genai.Part{
		FunctionCall: &genai.FunctionCall{
			ID:   toolUse.ID,
			Name: toolUse.Name,
			Args: args,
		},
	}, nil
}

// convertToolResultToFunctionResponse converts an llm.ToolResultContent to a genai.FunctionResponse part
func convertToolResultToFunctionResponse(content *llm.ToolResultContent, functionName string) (*genai.Part, error) {
	if content == nil {
		return nil, fmt.Errorf("content is nil")
	}
	var outputValue any
	switch c := content.Content.(type) {
	case string:
		outputValue = c
	case []byte:
		outputValue = string(c)
	case []*skillet.ToolResultContent:
		var parts []string
		for _, ch := range c {
			parts = append(parts, ch.Text)
		}
		outputValue = strings.Join(parts, "\n\n")
	default:
		return nil, fmt.Errorf("unknown content type: %v", reflect.TypeOf(c))
	}
	responseData := map[string]any{}
	if content.IsError {
		responseData["error"] = outputValue
	} else {
		responseData["output"] = outputValue
	}
	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:       content.ToolUseID,
			Name:     functionName,
			Response: responseData,
		},
	}, nil
}

// messagesToContents converts llm messages to genai.Content format for the
// GenerateContent API. Gemini only knows the "user" and "model" roles, so
// tool results travel in user-role contents.
func messagesToContents(messages []*llm.Message) ([]*genai.Content, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	contents := make([]*genai.Content, 0, len(messages))

	// Track tool uses for matching with results
	toolUses := map[string]*llm.ToolUseContent{}

	for i, message := range messages {
		if len(message.Content) == 0 {
			return nil, fmt.Errorf("empty message detected (index %d)", i)
		}
		role := "user"
		if message.Role == llm.Assistant {
			role = "model"
		}
		content := &genai.Content{
			Role: role,
		}

		for _, c := range message.Content {
			switch ct := c.(type) {
			case *llm.TextContent:
				content.Parts = append(content.Parts, genai.NewPartFromText(ct.Text))
			case *llm.ToolUseContent:
				// Track tool use for later matching
				toolUses[ct.ID] = ct
				part, err := convertToolUseToFunctionCall(ct)
				if err != nil {
					return nil, err
				}
				content.Parts = append(content.Parts, part)
			case *llm.ToolResultContent:
				// Get the function name from the tracked tool uses
				var functionName string
				if toolUse, ok := toolUses[ct.ToolUseID]; ok {
					functionName = toolUse.Name
				} else {
					return nil, fmt.Errorf("tool use not found for tool result: %s", ct.ToolUseID)
				}
				part, err := convertToolResultToFunctionResponse(ct, functionName)
				if err != nil {
					return nil, err
				}
				content.Parts = append(content.Parts, part)
			default:
				return nil, fmt.Errorf("unsupported content type: %s", c.Type())
			}
		}
		contents = append(contents, content)
	}

	return contents, nil
}

// convertAnySchemaToGenAI converts any schema to GenAI schema format
func convertAnySchemaToGenAI(inputSchema any) *genai.Schema {
	if s, ok := inputSchema.(*schema.Schema); ok {
		return convertSchemaToGenAI(s)
	}
	return nil
}

// convertSchemaToGenAI converts a tool schema to GenAI schema format
func convertSchemaToGenAI(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	genaiSchema := &genai.Schema{
		Type:        genai.Type(s.Type),
		Description: s.Description,
	}
	if s.Properties != nil {
		genaiSchema.Properties = make(map[string]*genai.Schema)
		for name, prop := range s.Properties {
			genaiSchema.Properties[name] = convertPropertyToGenAI(prop)
		}
	}
	if len(s.Required) > 0 {
		genaiSchema.Required = s.Required
	}
	return genaiSchema
}

// convertPropertyToGenAI converts a schema property to GenAI schema format
func convertPropertyToGenAI(prop *schema.Property) *genai.Schema {
	if prop == nil {
		return nil
	}
	genaiSchema := &genai.Schema{
		Type:        genai.Type(prop.Type),
		Description: prop.Description,
	}
	if len(prop.Enum) > 0 {
		enumValues := make([]string, 0, len(prop.Enum))
		for _, v := range prop.Enum {
			if s, ok := v.(string); ok {
				enumValues = append(enumValues, s)
			}
		}
		genaiSchema.Enum = enumValues
	}
	if prop.Items != nil {
		genaiSchema.Items = convertPropertyToGenAI(prop.Items)
	}
	if prop.Properties != nil {
		genaiSchema.Properties = make(map[string]*genai.Schema)
		for name, nestedProp := range prop.Properties {
			genaiSchema.Properties[name] = convertPropertyToGenAI(nestedProp)
		}
	}
	if len(prop.Required) > 0 {
		genaiSchema.Required = prop.Required
	}
	return genaiSchema
}

// buildGenAIGenerateConfig creates genai.GenerateContentConfig from Request
func buildGenAIGenerateConfig(request *Request) (*genai.GenerateContentConfig, error) {
	genConfig := &genai.GenerateContentConfig{}
	if request.Temperature != nil {
		temp := float32(*request.Temperature)
		genConfig.Temperature = &temp
	}
	if request.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(request.MaxTokens)
	}
	if request.System != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(request.System)},
		}
	}
	if len(request.Tools) > 0 {
		tools := make([]*genai.Tool, 0, len(request.Tools))
		for _, tool := range request.Tools {
			var toolSchema *genai.Schema
			if inputSchema, ok := tool["input_schema"]; ok && inputSchema != nil {
				toolSchema = convertAnySchemaToGenAI(inputSchema)
			}
			name, ok := tool["name"].(string)
			if !ok {
				return nil, fmt.Errorf("name is required for tool %v", tool)
			}
			description, ok := tool["description"].(string)
			if !ok {
				return nil, fmt.Errorf("description is required for tool %v", tool)
			}
			genaiTool := &genai.Tool{
				FunctionDeclarations: []*genai.FunctionDeclaration{{
					Name:        name,
					Description: description,
					Parameters:  toolSchema,
				}},
			}
			tools = append(tools, genaiTool)
		}
		genConfig.Tools = tools
		genConfig.ToolConfig = &genai.ToolConfig{FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingConfigModeAuto}}
	}
	return genConfig, nil
}
