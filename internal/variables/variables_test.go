package variables

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestContextPrecedence(t *testing.T) {
	ctx := New("test-project", "/test", fixedNow()).
		WithProjectVariables(map[string]string{"test_var": "project"}).
		WithAppVariables(map[string]string{"test_var": "app"})

	if v, _, _ := ctx.Get("test_var"); v != "app" {
		t.Fatalf("expected app-level override, got %q", v)
	}
	if v, _, _ := ctx.Get("project_name"); v != "test-project" {
		t.Fatalf("expected built-in project_name, got %q", v)
	}

	ctx.WithPackageVariables(map[string]string{"test_var": "package"})
	if v, _, _ := ctx.Get("test_var"); v != "package" {
		t.Fatalf("expected package-level override, got %q", v)
	}
}

func TestInterpolateDollarSyntax(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow())
	out, err := Interpolate("Hello ${project_name}!", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello my-project!" {
		t.Fatalf("got %q", out)
	}
}

func TestInterpolateBraceSyntax(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow())
	out, err := Interpolate("Hello {{project_name}}!", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello my-project!" {
		t.Fatalf("got %q", out)
	}
}

func TestInterpolateIdentityWithNoReferences(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow())
	out, err := Interpolate("plain text, nothing to expand", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "plain text, nothing to expand" {
		t.Fatalf("got %q", out)
	}
}

func TestInterpolateMissingVariableCollectsAll(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow())
	_, err := Interpolate("${missing_one} and ${missing_two} and ${missing_one}", ctx)
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
}

func TestInterpolateNestedReference(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow()).
		WithProjectVariables(map[string]string{
			"base":   "${project_name}-suffix",
			"banner": "built from ${base}",
		})
	out, err := Interpolate("${banner}", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "built from my-project-suffix" {
		t.Fatalf("got %q", out)
	}
}

func TestInterpolateCircularReference(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow()).
		WithProjectVariables(map[string]string{
			"a": "${b}",
			"b": "${a}",
		})
	_, err := Interpolate("${a}", ctx)
	if err == nil {
		t.Fatal("expected circular reference error")
	}
}

func TestListVariablesSortedByName(t *testing.T) {
	ctx := New("my-project", "/test", fixedNow()).
		WithProjectVariables(map[string]string{"zeta": "z", "alpha": "a"})
	list := ctx.ListVariables()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("not sorted: %v", list)
		}
	}
}
