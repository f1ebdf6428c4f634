package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "find_boards",
				"description": "List the agile boards of a Jira project, to pick one for velocity measurement.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_key": map[string]interface{}{"type": "string", "description": "Project key, defaults to the configured project"},
					},
				},
			},
			map[string]interface{}{
				"name":        "measure_velocity",
				"description": "Measure mean sprint velocity and its spread from the velocity report of a board.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_key": map[string]interface{}{"type": "string", "description": "Project key, defaults to the configured project"},
						"board_id":    map[string]interface{}{"type": "integer", "description": "Board to measure; 0 walks the project's boards"},
					},
				},
			},
			map[string]interface{}{
				"name":        "generate_burnup_chart",
				"description": "Generate a mermaid burnup chart with an 80%-confidence completion forecast for a fix version.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_key":  map[string]interface{}{"type": "string", "description": "Project key, defaults to the configured project"},
						"version_name": map[string]interface{}{"type": "string", "description": "Fix version name, defaults to the configured version"},
						"board_id":     map[string]interface{}{"type": "integer", "description": "Board for velocity measurement; 0 walks the project's boards"},
					},
				},
			},
		},
	}
}
