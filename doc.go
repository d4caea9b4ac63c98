// Package skillet provides the building blocks for a skill-driven AI
// agent: a registry of filesystem "skills" (instruction bundles with
// optional reference files and scripts), a fixed toolkit the model uses
// to discover and apply them, and a bounded reasoning loop that ties
// model responses to tool execution.
//
// The core types are:
//
//   - [Tool] and [TypedTool] define the callable operations an LLM can invoke.
//   - [TypedToolAdapter] validates raw tool arguments against the declared
//     schema and dispatches into a typed implementation.
//   - [ToolResult] carries tool output back into the conversation.
//
// The four fixed tools live in [github.com/deepnoodle-ai/skillet/toolkit].
// Skill scanning and parsing live in [github.com/deepnoodle-ai/skillet/skill].
// The reasoning loop lives in [github.com/deepnoodle-ai/skillet/agent].
// LLM providers are in the [github.com/deepnoodle-ai/skillet/providers]
// subpackages, and the MCP transport in
// [github.com/deepnoodle-ai/skillet/mcp].
package skillet
