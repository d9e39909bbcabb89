package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/task-tracker/modules/task"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	createTaskSchemaURL = "https://task-tracker.local/schemas/create-task.json"
	updateTaskSchemaURL = "https://task-tracker.local/schemas/update-task.json"
)

// Both bodies share the same shape; title presence on create is checked
// separately so a missing title gets its own message.
const taskBodySchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"completed": {"type": "boolean"}
	},
	"additionalProperties": false
}`

// fieldMessages maps an instance location to the message reported for it.
var fieldMessages = map[string]string{
	"/title":       msgTitleInvalid,
	"/description": msgDescriptionInvalid,
	"/completed":   msgCompletedInvalid,
}

// bodySchemas holds the compiled request body schemas.
type bodySchemas struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
}

func compileBodySchemas() (*bodySchemas, error) {
	compiler := jsonschema.NewCompiler()
	for _, url := range []string{createTaskSchemaURL, updateTaskSchemaURL} {
		if err := compiler.AddResource(url, strings.NewReader(taskBodySchema)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", url, err)
		}
	}

	create, err := compiler.Compile(createTaskSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile create schema: %w", err)
	}
	update, err := compiler.Compile(updateTaskSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile update schema: %w", err)
	}
	return &bodySchemas{create: create, update: update}, nil
}

// parseTaskID validates a path id: base-10 digits only, strictly positive.
func parseTaskID(raw string) (int64, error) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, newValidationError(msgInvalidTaskID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, newValidationError(msgInvalidTaskID)
	}
	return id, nil
}

// decodeCreateInput validates a create body and normalizes it.
func (s *bodySchemas) decodeCreateInput(body []byte) (task.CreateInput, error) {
	var req createTaskRequest
	if err := decodeBody(s.create, body, &req); err != nil {
		return task.CreateInput{}, err
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return task.CreateInput{}, newValidationError(msgTitleRequired)
	}

	in := task.CreateInput{Title: strings.TrimSpace(*req.Title)}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}
	return in, nil
}

// decodeUpdateInput validates an update body. Absent fields stay nil.
func (s *bodySchemas) decodeUpdateInput(body []byte) (task.UpdateInput, error) {
	var req updateTaskRequest
	if err := decodeBody(s.update, body, &req); err != nil {
		return task.UpdateInput{}, err
	}

	in := task.UpdateInput{
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return task.UpdateInput{}, newValidationError(msgTitleInvalid)
		}
		in.Title = &title
	}
	return in, nil
}

// decodeBody validates body against schema and decodes it into dst.
// An empty body is treated as an empty object.
func decodeBody(schema *jsonschema.Schema, body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return newValidationError(msgInvalidJSON)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return newValidationError(msgInvalidJSON)
	}

	if err := schema.Validate(doc); err != nil {
		return schemaValidationError(err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return newValidationError(msgInvalidJSON)
	}
	return nil
}

// schemaValidationError converts the first leaf schema failure into a
// ValidationError with a field-specific message.
func schemaValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return newValidationError(err.Error())
	}

	leaf := firstLeaf(ve)
	if msg, ok := fieldMessages[leaf.InstanceLocation]; ok {
		return newValidationError(msg)
	}
	if strings.HasSuffix(leaf.KeywordLocation, "/type") && leaf.InstanceLocation == "" {
		return newValidationError(msgBodyNotObject)
	}
	return newValidationError("invalid request body: " + leaf.Message)
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
