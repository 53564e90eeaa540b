package auditor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/procurement_backend/models"
)

type systemState struct {
	Orders    []models.Order        `json:"orders"`
	Journals  []models.JournalEntry `json:"journals"`
	Timestamp string                `json:"timestamp"`
}

// BuildPrompt renders the audit instructions followed by the system state as JSON.
func BuildPrompt(orders []models.Order, journals []models.JournalEntry, now time.Time) (string, error) {
	state := systemState{
		Orders:    orders,
		Journals:  journals,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	if state.Orders == nil {
		state.Orders = []models.Order{}
	}
	if state.Journals == nil {
		state.Journals = []models.JournalEntry{}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal system state: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are an expert Auditor and System Analyst for a Credit Purchase System.\n")
	b.WriteString("Analyze the following JSON state of the system including Purchase Orders (SOPB) and Accounting Journals.\n")
	b.WriteString("\n")
	b.WriteString("Rules for analysis:\n")
	b.WriteString("1. Check if \"Paid\" orders have a corresponding Journal Entry.\n")
	fmt.Fprintf(&b, "2. Identify any orders stuck in \"Submitted\" or \"Shipped\" for too long (today is %s).\n", now.UTC().Format("2006-01-02"))
	b.WriteString("3. Summarize the total pending debt (Invoiced but not Paid).\n")
	b.WriteString("4. Provide a brief, professional summary of the financial health based on these transactions.\n")
	b.WriteString("\n")
	b.WriteString("Here is the system data:\n")
	b.Write(data)
	b.WriteString("\n\n")
	b.WriteString("Return the response in Markdown format. Keep it concise.\n")
	return b.String(), nil
}
