package compilation

import "testing"

func TestPathTemplateMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/users", "/users", true},
		{"/users", "/users/", true},
		{"/users", "/users/1", false},
		{"/users/{id}", "/users/42", true},
		{"/users/{id}", "/users/42/avatar", false},
		{"/users/{id:\\d+}", "/users/42", true},
		{"/users/{id:\\d+}", "/users/me", false},
		{"/codes/{code:[a-z]{3}}", "/codes/abc", true},
		{"/codes/{code:[a-z]{3}}", "/codes/abcd", false},
		{"/files/*.txt", "/files/a.txt", true},
		{"/files/*.txt", "/files/a/b.txt", false},
		{"/static/**", "/static/css/site.css", true},
		{"/resources/{*rest}", "/resources/a/b", true},
		{"users/a.b", "/users/a.b", true},
		{"/users/a.b", "/users/aXb", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			tmpl, err := CompilePathTemplate(tt.pattern)
			if err != nil {
				t.Fatalf("CompilePathTemplate: %v", err)
			}
			if got := tmpl.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathTemplateVariables(t *testing.T) {
	tmpl, err := CompilePathTemplate("/orgs/{org}/users/{id:\\d+}")
	if err != nil {
		t.Fatal(err)
	}
	if len(tmpl.Variables) != 2 || tmpl.Variables[0] != "org" || tmpl.Variables[1] != "id" {
		t.Errorf("Variables = %v", tmpl.Variables)
	}
}

func TestPathTemplateErrors(t *testing.T) {
	for _, pattern := range []string{"/users/{id", "/users/{1d}", "/users/{id:[}"} {
		t.Run(pattern, func(t *testing.T) {
			if _, err := CompilePathTemplate(pattern); err == nil {
				t.Fatalf("expected error for %q", pattern)
			}
		})
	}
}

func TestMoreSpecific(t *testing.T) {
	literal, _ := CompilePathTemplate("/users/me")
	variable, _ := CompilePathTemplate("/users/{id}")
	wildcard, _ := CompilePathTemplate("/users/*")
	other, _ := CompilePathTemplate("/users/{name}")

	if !literal.MoreSpecific(variable) {
		t.Error("literal should be more specific than variable")
	}
	if !variable.MoreSpecific(wildcard) {
		t.Error("variable should be more specific than wildcard")
	}
	if !variable.SameSpecificity(other) {
		t.Error("two single-variable templates should tie")
	}
}
