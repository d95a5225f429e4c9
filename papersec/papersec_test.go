package papersec

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hazyhaar/papersec/llmcall"
)

// fakeCaller scripts model responses and records every prompt.
type fakeCaller struct {
	responses []string
	err       error
	prompts   []string
	opts      []llmcall.Options
}

func (f *fakeCaller) Call(_ context.Context, prompt string, opts llmcall.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeCaller: no scripted response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

const longLine = "This sentence pads the section body well past the plausibility threshold used by the quality gate during testing."

func paddedSection(heading string) string {
	return heading + "\n" + longLine + "\n" + longLine
}

func cleanPaper() string {
	return strings.Join([]string{
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
		paddedSection("# 2. Methods"),
		paddedSection("# 3. Results and Discussion"),
		paddedSection("# 4. Conclusion"),
	}, "\n\n")
}

func TestExtract_CleanDocumentNeverCallsModel(t *testing.T) {
	// WHAT: A document the heuristic fully resolves makes zero model calls.
	// WHY: Escalation is the expensive exception, not the default.
	model := &fakeCaller{}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), cleanPaper())
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(model.prompts))
	}
	if result.Escalated {
		t.Error("Escalated must be false")
	}
	if len(result.Sections) != 5 {
		t.Errorf("sections = %d, want 5", len(result.Sections))
	}
}

func TestExtract_NilModelReturnsHeuristic(t *testing.T) {
	// WHAT: Without a model, gaps are reported but extraction succeeds.
	doc := strings.Join([]string{
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
	}, "\n\n")
	e := New(Config{})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if result.Escalated {
		t.Error("Escalated must be false without a model")
	}
	if len(result.Report.MissingCritical) != 3 {
		t.Errorf("missing = %v", result.Report.MissingCritical)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	e := New(Config{})
	if _, err := e.Extract(context.Background(), "  \n\t "); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestExtract_ClassificationRecoversSection(t *testing.T) {
	// WHAT: An unrecognized numbered heading the model classifies as Methods
	// fills the gap without a second model call.
	// WHY: Heading classification is far cheaper than full re-extraction and
	// cancels the extraction bridge when nothing is left missing.
	doc := strings.Join([]string{
		"# Sheath Dynamics in Low Pressure Plasmas", // paper title
		"",
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
		paddedSection("# 2. Governing Equations of the Sheath"),
		paddedSection("# 3. Results and Discussion"),
		paddedSection("# 4. Conclusion"),
	}, "\n\n")

	model := &fakeCaller{responses: []string{`{"1": "Unknown", "2": "Methods"}`}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "# 2. Governing Equations of the Sheath") {
		t.Error("classification prompt must list the unrecognized heading")
	}
	if !model.opts[0].JSONMode {
		t.Error("classification must request JSON mode")
	}

	methods, ok := result.Sections[SectionMethods]
	if !ok {
		t.Fatal("Methods not recovered")
	}
	if !strings.HasPrefix(methods, "# 2. Governing Equations") {
		t.Errorf("Methods content = %q", firstLineOf(methods))
	}
	if !result.Escalated {
		t.Error("Escalated must be true")
	}
	// The report reflects the heuristic pass, before recovery.
	if len(result.Report.MissingCritical) != 1 || result.Report.MissingCritical[0] != SectionMethods {
		t.Errorf("pre-bridge missing = %v", result.Report.MissingCritical)
	}
}

func TestExtract_ClassificationCancelsExtractionBridge(t *testing.T) {
	// WHAT: When classification fills every missing critical section, no
	// extraction request follows, even with a short section still present.
	// WHY: Remaining short sections keep their heuristic content once the
	// critical gaps are closed.
	doc := strings.Join([]string{
		"# Sheath Dynamics in Low Pressure Plasmas", // paper title
		"",
		"# Abstract\nToo short.",
		paddedSection("# 1. Introduction"),
		paddedSection("# 2. Governing Equations of the Sheath"),
		paddedSection("# 3. Results and Discussion"),
		paddedSection("# 4. Conclusion"),
	}, "\n\n")

	model := &fakeCaller{responses: []string{`{"1": "Unknown", "2": "Methods"}`}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	if _, ok := result.Sections[SectionMethods]; !ok {
		t.Fatal("Methods not recovered")
	}
	if got := strings.TrimSpace(result.Sections[SectionAbstract]); got != "# Abstract\nToo short." {
		t.Errorf("short Abstract rewritten: %q", got)
	}
	if !result.Escalated {
		t.Error("Escalated must be true")
	}
}

func TestExtract_ClassificationGroupsAndPrepends(t *testing.T) {
	// WHAT: Two headings classified into the same category are concatenated
	// in document order and prepended to existing heuristic content.
	doc := strings.Join([]string{
		"# Sheath Dynamics in Low Pressure Plasmas", // paper title
		"",
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
		paddedSection("# 2. Governing Equations of the Sheath"),
		paddedSection("# 3. Discretization of the Sheath Equations"),
		"# 4. Methods\nBrief note.",
		paddedSection("# 5. Results and Discussion"),
		paddedSection("# 6. Conclusion"),
	}, "\n\n")

	model := &fakeCaller{responses: []string{`{"1": "Unknown", "2": "Methods", "3": "Methods"}`}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}

	methods, ok := result.Sections[SectionMethods]
	if !ok {
		t.Fatal("Methods missing")
	}
	if !strings.HasPrefix(methods, "# 2. Governing Equations") {
		t.Errorf("Methods must start with the earliest fragment, got %q", firstLineOf(methods))
	}
	governing := strings.Index(methods, "# 2. Governing Equations")
	discretization := strings.Index(methods, "# 3. Discretization")
	existing := strings.Index(methods, "# 4. Methods")
	if discretization < 0 || existing < 0 {
		t.Fatalf("Methods fragments incomplete: %q", methods)
	}
	if !(governing < discretization && discretization < existing) {
		t.Errorf("fragment order wrong: governing=%d discretization=%d existing=%d",
			governing, discretization, existing)
	}
	if !strings.Contains(methods, "Brief note.") {
		t.Error("heuristic Methods content lost")
	}
}

func TestExtract_FullBridgeOnEmptyHeuristic(t *testing.T) {
	// WHAT: A document with no recognizable structure goes straight to the
	// full-document request.
	doc := "just some plain paragraph text without any structure at all\n" +
		"and another line of prose that keeps going for a while longer here"

	model := &fakeCaller{responses: []string{
		`{"Abstract": "` + strings.Repeat("a", 150) + `", "Methods": "` + strings.Repeat("m", 150) + `"}`,
	}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "just some plain paragraph text") {
		t.Error("full prompt must embed the document")
	}
	if model.opts[0].MaxTokens != 16000 {
		t.Errorf("full request max tokens = %d, want 16000", model.opts[0].MaxTokens)
	}
	if len(result.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(result.Sections))
	}
	if !result.Escalated {
		t.Error("Escalated must be true")
	}
}

func TestExtract_PartialBridgeRequestsOnlyGaps(t *testing.T) {
	// WHAT: With one section missing, only that section is requested, with
	// the small token budget.
	doc := strings.Join([]string{
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
		paddedSection("# 3. Results and Discussion"),
		paddedSection("# 4. Conclusion"),
	}, "\n\n")

	model := &fakeCaller{responses: []string{
		`{"Methods": "# 2. Methods\n` + strings.Repeat("m", 150) + `"}`,
	}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	prompt := model.prompts[0]
	if !strings.Contains(prompt, "- **Methods**") {
		t.Error("partial prompt must name the missing section")
	}
	if strings.Contains(prompt, "- **Abstract**") {
		t.Error("partial prompt must not request found sections")
	}
	if model.opts[0].MaxTokens != 8000 {
		t.Errorf("single-target max tokens = %d, want 8000", model.opts[0].MaxTokens)
	}
	if _, ok := result.Sections[SectionMethods]; !ok {
		t.Error("Methods not filled")
	}
}

func TestExtract_ModelFailureDegradesToHeuristic(t *testing.T) {
	// WHAT: A dead model service never fails the extraction.
	doc := strings.Join([]string{
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
	}, "\n\n")

	model := &fakeCaller{err: errors.New("service unavailable")}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if result.Escalated {
		t.Error("failed bridge must not mark Escalated")
	}
	if len(result.Sections) != 2 {
		t.Errorf("sections = %d, want the 2 heuristic ones", len(result.Sections))
	}
}

func TestExtract_MalformedResponseDegrades(t *testing.T) {
	doc := strings.Join([]string{
		paddedSection("# Abstract"),
		paddedSection("# 1. Introduction"),
	}, "\n\n")

	model := &fakeCaller{responses: []string{"total nonsense, not even json"}}
	e := New(Config{Model: model})

	result, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(result.Sections))
	}
}

func TestExtract_SecondRunIsStable(t *testing.T) {
	// WHAT: Re-extracting the same clean document yields the same map.
	e := New(Config{})
	first, err := e.Extract(context.Background(), cleanPaper())
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Extract(context.Background(), cleanPaper())
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Sections) != len(second.Sections) {
		t.Fatalf("section counts differ: %d vs %d", len(first.Sections), len(second.Sections))
	}
	for name, content := range first.Sections {
		if second.Sections[name] != content {
			t.Errorf("section %q differs between runs", name)
		}
	}
}
