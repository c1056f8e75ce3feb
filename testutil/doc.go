// Package testutil provides helpers shared by the urlkit command tests.
//
//   - CaptureOutput collects everything written to os.Stdout while a
//     function runs
//   - WriteLines writes a newline-separated input file into a temp directory
//
// Example usage:
//
//	func TestScanCommand(t *testing.T) {
//	    input := testutil.WriteLines(t, "urls.txt", "https://example.com", "ftp:x")
//	    output := testutil.CaptureOutput(t, func() error {
//	        cmd.SetArgs([]string{"scan", "--input", input})
//	        return cmd.Execute()
//	    })
//	    if !strings.Contains(output, "1 invalid") {
//	        t.Errorf("unexpected output: %s", output)
//	    }
//	}
package testutil
