package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/llm"
	"github.com/inletlabs/attache/pkg/tools"
)

type fakeService struct {
	reply    llm.ProcessedReply
	messages []string
	cleared  int
}

func (f *fakeService) ProcessMessage(_ context.Context, message string) llm.ProcessedReply {
	f.messages = append(f.messages, message)
	return f.reply
}

func (f *fakeService) ClearHistory() {
	f.cleared++
}

var testSpecs = []tools.Spec{
	{Name: "calculate_sum", Description: "Sum a list of numbers"},
	{Name: "get_weather", Description: "Get weather for Bangalore, Berlin, or New York"},
}

func decodeBody(resp *http.Response) map[string]any {
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())

	var got map[string]any
	Expect(json.Unmarshal(payload, &got)).To(Succeed())
	return got
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

var _ = Describe("Server", func() {
	var (
		service *fakeService
		server  *Server
	)

	healthy := HealthStatus{
		Status:                  "healthy",
		ConfigurationValid:      true,
		AzureEndpointConfigured: true,
		APIKeyConfigured:        true,
		DeploymentConfigured:    true,
	}

	BeforeEach(func() {
		service = &fakeService{reply: llm.ProcessedReply{Response: "Hello!"}}
		server = NewServer(Config{
			ListenAddr:  ":0",
			CORSOrigins: []string{"http://localhost:5173"},
			Version:     "test",
		}, service, healthy, testSpecs, zap.NewNop())
	})

	Describe("GET /", func() {
		It("reports the service identity and version", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			Expect(got["status"]).To(Equal("healthy"))
			Expect(got["message"]).To(Equal("Intelligent Personal Agent API is running"))
			Expect(got["version"]).To(Equal("test"))
		})
	})

	Describe("GET /health", func() {
		It("reports configuration flags", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			Expect(got["status"]).To(Equal("healthy"))
			Expect(got["configuration_valid"]).To(BeTrue())
			Expect(got["azure_endpoint_configured"]).To(BeTrue())
			Expect(got["api_key_configured"]).To(BeTrue())
			Expect(got["deployment_configured"]).To(BeTrue())
		})

		It("reports degraded state without hiding the endpoint", func() {
			degraded := HealthStatus{Status: "degraded"}
			server = NewServer(Config{ListenAddr: ":0"}, nil, degraded, testSpecs, zap.NewNop())

			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			Expect(got["status"]).To(Equal("degraded"))
			Expect(got["configuration_valid"]).To(BeFalse())
		})
	})

	Describe("GET /tools", func() {
		It("lists tools with names and descriptions", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/tools", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			toolList, ok := got["tools"].([]any)
			Expect(ok).To(BeTrue())
			Expect(toolList).To(HaveLen(2))

			first, ok := toolList[0].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(first["name"]).To(Equal("calculate_sum"))
			Expect(first["description"]).To(Equal("Sum a list of numbers"))
		})
	})

	Describe("POST /chat", func() {
		It("forwards the message and returns the processed reply", func() {
			service.reply = llm.ProcessedReply{
				Response:   "It is cloudy.",
				ToolUsed:   "get_weather",
				ToolOutput: "Weather in Berlin: 10°C, Cloudy, Humidity: 75%",
			}

			resp, err := server.app.Test(postJSON("/chat", `{"message": "weather in Berlin?"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			Expect(got["response"]).To(Equal("It is cloudy."))
			Expect(got["tool_used"]).To(Equal("get_weather"))
			Expect(got["tool_output"]).To(ContainSubstring("Cloudy"))

			Expect(service.messages).To(Equal([]string{"weather in Berlin?"}))
		})

		It("omits empty optional reply fields", func() {
			resp, err := server.app.Test(postJSON("/chat", `{"message": "hi"}`))
			Expect(err).NotTo(HaveOccurred())

			got := decodeBody(resp)
			Expect(got).To(HaveKey("response"))
			Expect(got).NotTo(HaveKey("tool_used"))
			Expect(got).NotTo(HaveKey("tool_output"))
			Expect(got).NotTo(HaveKey("thinking"))
		})

		It("rejects an empty message", func() {
			resp, err := server.app.Test(postJSON("/chat", `{"message": ""}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed body", func() {
			resp, err := server.app.Test(postJSON("/chat", `{not json`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("answers 503 when the agent is not configured", func() {
			server = NewServer(Config{ListenAddr: ":0"}, nil, HealthStatus{Status: "degraded"}, testSpecs, zap.NewNop())

			resp, err := server.app.Test(postJSON("/chat", `{"message": "hi"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))

			got := decodeBody(resp)
			Expect(got["detail"]).To(Equal(notConfiguredDetail))
		})
	})

	Describe("POST /clear-history", func() {
		It("clears the conversation", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodPost, "/clear-history", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody(resp)
			Expect(got["status"]).To(Equal("success"))
			Expect(got["message"]).To(Equal("Chat history cleared"))
			Expect(service.cleared).To(Equal(1))
		})

		It("answers 503 when the agent is not configured", func() {
			server = NewServer(Config{ListenAddr: ":0"}, nil, HealthStatus{Status: "degraded"}, testSpecs, zap.NewNop())

			resp, err := server.app.Test(httptest.NewRequest(http.MethodPost, "/clear-history", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
