// Package mcpserver exposes workflow orchestration as MCP tools over stdio,
// so conversational agents can trigger and inspect workflow runs.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/history"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

// getArgs extracts arguments from a request as map[string]any.
func getArgs(request mcp.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}

	return make(map[string]any)
}

// Server wraps an MCP server around the workflow executor.
type Server struct {
	mcpServer   *server.MCPServer
	logger      *slog.Logger
	definitions *definitions.Store
	executor    *workflow.Executor
}

func NewServer(
	logger *slog.Logger,
	definitionStore *definitions.Store,
	executor *workflow.Executor,
	version string,
) *Server {
	s := &Server{
		logger:      logger.With("module", "mcp_server"),
		definitions: definitionStore,
		executor:    executor,
	}

	mcpServer := server.NewMCPServer(
		"paperflow",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer

	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	triggerTool := mcp.NewTool("trigger_workflow",
		mcp.WithDescription("Run a workflow by name with optional trigger data and return the execution record"),
		mcp.WithString("workflow_name",
			mcp.Required(),
			mcp.Description("Name of the workflow to run"),
		),
		mcp.WithString("trigger_event",
			mcp.Description("Event name that caused this trigger"),
		),
		mcp.WithObject("trigger_data",
			mcp.Description("Payload made available to steps as trigger_data"),
		),
	)
	mcpServer.AddTool(triggerTool, s.handleTriggerWorkflow)

	listTool := mcp.NewTool("list_workflows",
		mcp.WithDescription("List the available workflow definitions"),
	)
	mcpServer.AddTool(listTool, s.handleListWorkflows)

	getExecutionTool := mcp.NewTool("get_workflow_execution",
		mcp.WithDescription("Get the status and step results of a workflow execution"),
		mcp.WithString("execution_id",
			mcp.Required(),
			mcp.Description("Execution ID returned by trigger_workflow"),
		),
	)
	mcpServer.AddTool(getExecutionTool, s.handleGetExecution)

	createTool := mcp.NewTool("create_workflow_definition",
		mcp.WithDescription("Create a new workflow definition from a document with steps"),
		mcp.WithString("workflow_name",
			mcp.Required(),
			mcp.Description("Name for the new workflow"),
		),
		mcp.WithObject("definition",
			mcp.Required(),
			mcp.Description("Workflow document with description, triggers and steps"),
		),
	)
	mcpServer.AddTool(createTool, s.handleCreateWorkflow)
}

func (s *Server) handleTriggerWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)

	workflowName, _ := args["workflow_name"].(string)
	if workflowName == "" {
		return mcp.NewToolResultError("workflow_name parameter is required"), nil
	}

	triggerEvent, _ := args["trigger_event"].(string)
	triggerData, _ := args["trigger_data"].(map[string]any)

	execution, err := s.executor.Execute(ctx, workflowName, triggerEvent, triggerData)
	if err != nil {
		if definitions.IsWorkflowNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("workflow %q not found", workflowName)), nil
		}

		if execution == nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to run workflow: %v", err)), nil
		}

		s.logger.WarnContext(ctx, "Execution finished but was not persisted", "error", err)
	}

	return jsonResult(execution)
}

func (s *Server) handleListWorkflows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"workflows": s.definitions.ListSummaries(),
	})
}

func (s *Server) handleGetExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)

	executionID, _ := args["execution_id"].(string)
	if executionID == "" {
		return mcp.NewToolResultError("execution_id parameter is required"), nil
	}

	execution, err := s.executor.LookupExecution(ctx, executionID)
	if err != nil {
		if history.IsExecutionNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("execution %q not found", executionID)), nil
		}

		return mcp.NewToolResultError(fmt.Sprintf("failed to look up execution: %v", err)), nil
	}

	return jsonResult(execution)
}

func (s *Server) handleCreateWorkflow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)

	workflowName, _ := args["workflow_name"].(string)
	if workflowName == "" {
		return mcp.NewToolResultError("workflow_name parameter is required"), nil
	}

	definition, _ := args["definition"].(map[string]any)
	if definition == nil {
		return mcp.NewToolResultError("definition parameter is required"), nil
	}

	if err := s.definitions.Create(workflowName, definition); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create workflow: %v", err)), nil
	}

	created, err := s.definitions.Get(workflowName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load created workflow: %v", err)), nil
	}

	return jsonResult(created)
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
