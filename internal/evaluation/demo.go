package evaluation

import (
	"encoding/json"

	"github.com/abhisek/aperture/internal/llm"
)

// OfflineResponse answers evaluate_photo requests when the "mock" provider
// is selected, so the course can be walked through without an API key.
func OfflineResponse(req llm.Request) llm.MockResponse {
	if req.Schema == nil || req.Schema.Name != ToolName {
		return llm.MockResponse{Content: json.RawMessage(`""`)}
	}
	content, _ := json.Marshal(Result{
		Rating: 4,
		Pass:   true,
		Strengths: []string{
			"The main subject is clear and easy to find.",
			"The frame shows deliberate thought about the lesson's concept.",
		},
		Improvements: []string{
			"Check the edges of the frame for distractions before shooting.",
			"Try a second angle to compare how the concept reads.",
		},
		Summary: "Offline mode: this is a sample evaluation. Configure an LLM provider to get real feedback on your photo.",
	})
	return llm.MockResponse{Content: content}
}
