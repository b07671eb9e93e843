package include

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestProcessFile_RootRelative(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"ddl/_all.sql":                 "\\i ddl/CU_Customer.sql\n\\i ddl/CU_NAM_Customer_Name.sql\n",
		"ddl/CU_Customer.sql":          "CREATE TABLE IF NOT EXISTS CU_Customer (CU_ID INT PRIMARY KEY);\n",
		"ddl/CU_NAM_Customer_Name.sql": "CREATE TABLE IF NOT EXISTS CU_NAM_Customer_Name (CU_ID INT);\n",
	})

	result, err := NewProcessor(root).ProcessFile(filepath.Join(root, "ddl", "_all.sql"))
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	want := "CREATE TABLE IF NOT EXISTS CU_Customer (CU_ID INT PRIMARY KEY);\n" +
		"CREATE TABLE IF NOT EXISTS CU_NAM_Customer_Name (CU_ID INT);\n"
	if result != want {
		t.Errorf("result =\n%q\nwant\n%q", result, want)
	}
}

func TestProcessFile_FileRelativeAndNested(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.sql":    "-- main\n\\ir parts/a.sql;\n-- end",
		"parts/a.sql": "SELECT 1;\n\\ir b.sql",
		"parts/b.sql": "SELECT 2;",
	})

	result, err := NewProcessor(root).ProcessFile(filepath.Join(root, "main.sql"))
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if result != "-- main\nSELECT 1;\nSELECT 2;\n-- end" {
		t.Errorf("unexpected result: %q", result)
	}
}

func TestProcessFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "missing file",
			files: map[string]string{"main.sql": "\\i missing.sql"},
			want:  "included file does not exist",
		},
		{
			name:  "traversal",
			files: map[string]string{"main.sql": "\\i ../secret.sql"},
			want:  "is outside",
		},
		{
			name: "circular",
			files: map[string]string{
				"main.sql": "\\i a.sql",
				"a.sql":    "\\i main.sql",
			},
			want: "circular include detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)

			_, err := NewProcessor(root).ProcessFile(filepath.Join(root, "main.sql"))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
