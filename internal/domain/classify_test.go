package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedKind     Kind
		expectedUsername string
		expectedResource string
	}{
		{
			name:             "bare username",
			input:            "reubencf",
			expectedKind:     KindProfile,
			expectedUsername: "reubencf",
		},
		{
			name:             "bare username with whitespace and trailing slash",
			input:            "  reubencf/ ",
			expectedKind:     KindProfile,
			expectedUsername: "reubencf",
		},
		{
			name:             "profile url",
			input:            "https://huggingface.co/reubencf",
			expectedKind:     KindProfile,
			expectedUsername: "reubencf",
		},
		{
			name:             "profile url without scheme",
			input:            "huggingface.co/reubencf/",
			expectedKind:     KindProfile,
			expectedUsername: "reubencf",
		},
		{
			name:             "model url",
			input:            "https://huggingface.co/reubencf/my-model",
			expectedKind:     KindModel,
			expectedUsername: "reubencf",
			expectedResource: "my-model",
		},
		{
			name:             "model tree url",
			input:            "https://huggingface.co/reubencf/my-model/tree/main",
			expectedKind:     KindModel,
			expectedUsername: "reubencf",
			expectedResource: "my-model",
		},
		{
			name:             "model discussions url",
			input:            "http://huggingface.co/reubencf/my-model/discussions",
			expectedKind:     KindModel,
			expectedUsername: "reubencf",
			expectedResource: "my-model",
		},
		{
			name:             "unknown third segment still a model",
			input:            "https://huggingface.co/reubencf/my-model/commits/main",
			expectedKind:     KindModel,
			expectedUsername: "reubencf",
			expectedResource: "my-model",
		},
		{
			name:             "dataset url",
			input:            "https://huggingface.co/datasets/org/my-dataset",
			expectedKind:     KindDataset,
			expectedUsername: "org",
			expectedResource: "my-dataset",
		},
		{
			name:             "dataset blob url",
			input:            "https://huggingface.co/datasets/org/my-dataset/blob/main/README.md",
			expectedKind:     KindDataset,
			expectedUsername: "org",
			expectedResource: "my-dataset",
		},
		{
			name:             "space url",
			input:            "https://huggingface.co/spaces/org/my-space",
			expectedKind:     KindSpace,
			expectedUsername: "org",
			expectedResource: "my-space",
		},
		{
			name:             "spaces wins over datasets",
			input:            "https://huggingface.co/datasets/a/b/spaces/c/d",
			expectedKind:     KindSpace,
			expectedUsername: "c",
			expectedResource: "d",
		},
		{
			name:             "space subdomain",
			input:            "https://reubencf-myspace.hf.space",
			expectedKind:     KindSpace,
			expectedUsername: "reubencf",
			expectedResource: "myspace",
		},
		{
			name:             "space subdomain with hyphenated name",
			input:            "https://reubencf-my-cool-space.hf.space/",
			expectedKind:     KindSpace,
			expectedUsername: "reubencf",
			expectedResource: "my-cool-space",
		},
		{
			name:             "space subdomain ignores path",
			input:            "https://reubencf-myspace.hf.space/models/x",
			expectedKind:     KindSpace,
			expectedUsername: "reubencf",
			expectedResource: "myspace",
		},
		{
			name:             "models listing page",
			input:            "https://huggingface.co/org/models",
			expectedKind:     KindProfile,
			expectedUsername: "org",
		},
		{
			name:             "datasets listing page",
			input:            "https://huggingface.co/org/datasets",
			expectedKind:     KindProfile,
			expectedUsername: "org",
		},
		{
			name:             "spaces listing page",
			input:            "https://huggingface.co/org/spaces",
			expectedKind:     KindProfile,
			expectedUsername: "org",
		},
		{
			name:             "datasets marker with a single segment falls through",
			input:            "https://huggingface.co/org/datasets/only",
			expectedKind:     KindProfile,
			expectedUsername: "org",
		},
		{
			name:             "uppercase host",
			input:            "https://HuggingFace.co/reubencf",
			expectedKind:     KindProfile,
			expectedUsername: "reubencf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", tt.input, err)
			}

			if link.Kind != tt.expectedKind {
				t.Errorf("Kind = %v, want %v", link.Kind, tt.expectedKind)
			}
			if link.Username != tt.expectedUsername {
				t.Errorf("Username = %v, want %v", link.Username, tt.expectedUsername)
			}
			if link.ResourceName != tt.expectedResource {
				t.Errorf("ResourceName = %v, want %v", link.ResourceName, tt.expectedResource)
			}

			wantProfileURL := "https://huggingface.co/" + tt.expectedUsername
			if link.ProfileURL != wantProfileURL {
				t.Errorf("ProfileURL = %v, want %v", link.ProfileURL, wantProfileURL)
			}
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "foreign host", input: "https://example.com/foo"},
		{name: "foreign host without path", input: "http://github.com"},
		{name: "hub root", input: "https://huggingface.co"},
		{name: "hub root with slash", input: "https://huggingface.co/"},
		{name: "scheme-less hub root", input: "huggingface.co"},
		{name: "space subdomain without hyphen", input: "https://myspace.hf.space"},
		{name: "space subdomain with empty owner", input: "https://-myspace.hf.space"},
		{name: "empty input", input: "   "},
		{name: "malformed url", input: "https://huggingface.co/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.input)
			if err == nil {
				t.Fatalf("Classify(%q) = nil error, want InvalidLinkError", tt.input)
			}

			var ile *InvalidLinkError
			if !errors.As(err, &ile) {
				t.Fatalf("Classify(%q) error type = %T, want *InvalidLinkError", tt.input, err)
			}
			if ile.Reason == "" {
				t.Error("InvalidLinkError.Reason should not be empty")
			}
			if ile.Input != tt.input {
				t.Errorf("InvalidLinkError.Input = %q, want %q", ile.Input, tt.input)
			}
		})
	}
}

func TestClassifySourceURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "reubencf", expected: "reubencf"},
		{input: " reubencf/ ", expected: "reubencf"},
		{input: "huggingface.co/reubencf", expected: "https://huggingface.co/reubencf"},
		{input: "https://huggingface.co/reubencf/my-model/", expected: "https://huggingface.co/reubencf/my-model"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			link, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if link.SourceURL != tt.expected {
				t.Errorf("SourceURL = %q, want %q", link.SourceURL, tt.expected)
			}
		})
	}
}

func TestClassifyProfileURLIsStable(t *testing.T) {
	inputs := []string{
		"reubencf",
		"huggingface.co/reubencf",
		"https://huggingface.co/reubencf",
		"https://huggingface.co/org/models",
		"Some-Org_42",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Classify(input)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", input, err)
			}
			second, err := Classify(first.ProfileURL)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", first.ProfileURL, err)
			}
			if second.ProfileURL != first.ProfileURL {
				t.Errorf("ProfileURL changed: %q -> %q", first.ProfileURL, second.ProfileURL)
			}
			if second.Kind != KindProfile {
				t.Errorf("Kind of profile URL = %v, want profile", second.Kind)
			}
		})
	}
}

func TestClassifyResourceInvariant(t *testing.T) {
	inputs := []string{
		"reubencf",
		"https://huggingface.co/reubencf",
		"https://huggingface.co/reubencf/my-model",
		"https://huggingface.co/reubencf/my-model/resolve/main/config.json",
		"https://huggingface.co/datasets/org/my-dataset",
		"https://huggingface.co/spaces/org/my-space",
		"https://reubencf-myspace.hf.space",
		"https://huggingface.co/org/spaces",
	}

	for _, input := range inputs {
		link, err := Classify(input)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", input, err)
		}
		if link.Username == "" {
			t.Errorf("Classify(%q) returned empty username", input)
		}
		if link.HasResource() != (link.Kind != KindProfile) {
			t.Errorf("Classify(%q): kind=%v resource=%q breaks resource invariant", input, link.Kind, link.ResourceName)
		}
	}
}

func TestClassifyConcurrent(t *testing.T) {
	want, err := Classify("https://huggingface.co/spaces/org/my-space")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Classify("https://huggingface.co/spaces/org/my-space")
			if err != nil || got != want {
				t.Errorf("concurrent Classify() = %+v, %v; want %+v", got, err, want)
			}
		}()
	}
	wg.Wait()
}
