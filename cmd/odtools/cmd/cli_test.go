package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errFatal aborts a command under test the way os.Exit would.
type errFatal struct {
	msg string
}

func (e errFatal) Error() string {
	return e.msg
}

// runCLI executes one odtools command with the fatal handlers patched, and
// returns the captured output and the fatal message, if any.
func runCLI(t *testing.T, args ...string) (string, string) {
	t.Helper()

	savedFatalln, savedFatalf, savedExit := logFatalln, logFatalf, osExit
	savedInfo, savedStdOut := infoLogger, logStdOut
	defer func() {
		logFatalln, logFatalf, osExit = savedFatalln, savedFatalf, savedExit
		infoLogger, logStdOut = savedInfo, savedStdOut
	}()

	var out bytes.Buffer
	infoLogger = log.New(&out, "", 0)
	logStdOut = func(format string, a ...interface{}) (int, error) {
		return fmt.Fprintf(&out, format, a...)
	}
	logFatalln = func(v ...interface{}) {
		panic(errFatal{msg: fmt.Sprintln(v...)})
	}
	logFatalf = func(format string, v ...interface{}) {
		panic(errFatal{msg: fmt.Sprintf(format, v...)})
	}
	osExit = func(code int) {
		panic(errFatal{msg: fmt.Sprintf("exit %d", code)})
	}

	var fatal string
	func() {
		defer func() {
			if r := recover(); r != nil {
				e, ok := r.(errFatal)
				if !ok {
					panic(r)
				}
				fatal = e.msg
			}
		}()
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			fatal = err.Error()
		}
	}()
	return out.String(), fatal
}

func tempStore(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "odtools-cli-test-")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir
}

func TestCLISubjectDateSession(t *testing.T) {
	dir := tempStore(t)

	_, fatal := runCLI(t, "subject", "add", "--store", dir, "--subject", "subj-001")
	require.Empty(t, fatal)
	_, fatal = runCLI(t, "subject", "add", "--store", dir, "--subject", "subj-002")
	require.Empty(t, fatal)

	out, fatal := runCLI(t, "subject", "list", "--store", dir)
	require.Empty(t, fatal)
	assert.Contains(t, out, "subj-001")
	assert.Contains(t, out, "subj-002")

	_, fatal = runCLI(t, "date", "add", "--store", dir, "--subject", "subj-001", "--date", "2020-01-02")
	require.Empty(t, fatal)
	out, fatal = runCLI(t, "date", "list", "--store", dir, "--subject", "subj-001")
	require.Empty(t, fatal)
	assert.Contains(t, out, "subj-001 , 2020-01-02")

	_, fatal = runCLI(t, "session", "add", "--store", dir,
		"--subject", "subj-001", "--date", "2020-01-02", "--session", "1")
	require.Empty(t, fatal)
	out, fatal = runCLI(t, "session", "list", "--store", dir, "--subject", "subj-001")
	require.Empty(t, fatal)
	assert.Contains(t, out, "session 1")
}

func TestCLIDomainAndDataset(t *testing.T) {
	dir := tempStore(t)
	seedSession(t, dir)

	_, fatal := runCLI(t, "domain", "add", "--store", dir,
		"--of", "subj-001/2020-01-02/1", "--name", "ephys",
		"--definition", "extracellular recordings")
	require.Empty(t, fatal)

	payload := []byte("spike payload")
	src := filepath.Join(tempStore(t), "spikes.bin")
	require.NoError(t, ioutil.WriteFile(src, payload, 0600))

	out, fatal := runCLI(t, "dataset", "add", "--store", dir,
		"--of", "subj-001/2020-01-02/1/ephys",
		"--name", "spikes.bin", "--source", src,
		"--definition", "spike times", "--unit", "ms")
	require.Empty(t, fatal)
	assert.Contains(t, out, "spikes.bin")
	assert.Contains(t, out, "spike times")

	out, fatal = runCLI(t, "dataset", "list", "--store", dir,
		"--of", "subj-001/2020-01-02/1/ephys")
	require.Empty(t, fatal)
	assert.Contains(t, out, "spikes.bin , spike times")

	dest := filepath.Join(tempStore(t), "retrieved.bin")
	_, fatal = runCLI(t, "dataset", "get", "--store", dir,
		"--of", "subj-001/2020-01-02/1/ephys",
		"--name", "spikes.bin", "--destination", dest)
	require.Empty(t, fatal)
	retrieved, err := ioutil.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, retrieved)
}

func TestCLIAttrAndDescribe(t *testing.T) {
	dir := tempStore(t)
	seedSession(t, dir)

	_, fatal := runCLI(t, "attr", "set", "--store", dir,
		"--of", "subj-001/2020-01-02/1",
		"--key", "temperature", "--value", "36.5",
		"--definition", "room temperature", "--unit", "celsius")
	require.Empty(t, fatal)

	out, fatal := runCLI(t, "attr", "get", "--store", dir,
		"--of", "subj-001/2020-01-02/1", "--key", "temperature")
	require.Empty(t, fatal)
	assert.Contains(t, out, "36.5")

	_, fatal = runCLI(t, "describe", "--store", dir, "--of", "",
		"--message", "maze navigation study")
	require.Empty(t, fatal)
	out, fatal = runCLI(t, "describe", "--store", dir, "--of", "", "--message", "")
	require.Empty(t, fatal)
	assert.Contains(t, out, "maze navigation study")
	assert.Contains(t, out, "[root]")
}

func TestCLIExportAndCopy(t *testing.T) {
	dir := tempStore(t)
	seedSession(t, dir)

	// export writes to stdout, not the patched logger: verify it runs clean
	_, fatal := runCLI(t, "export", "--store", dir, "--format", "json", "--path", "")
	require.Empty(t, fatal)

	dest := tempStore(t)
	_, fatal = runCLI(t, "copy", "--store", dir,
		"--from", "", "--to", "", "--dest-store", dest)
	require.Empty(t, fatal)

	out, fatal := runCLI(t, "subject", "list", "--store", dest)
	require.Empty(t, fatal)
	assert.Contains(t, out, "subj-001")
}

func TestCLIVersion(t *testing.T) {
	out, fatal := runCLI(t, "version")
	require.Empty(t, fatal)
	assert.Contains(t, out, "Version: dev")
}

func TestCLIBadBackend(t *testing.T) {
	dir := tempStore(t)
	_, fatal := runCLI(t, "subject", "list", "--store", dir, "--backend", "bogus")
	require.NotEmpty(t, fatal)
	assert.Contains(t, fatal, "unknown backend")

	// reset for subsequent tests
	odtoolsFlags.root.backend = "localfs"
}

func TestCLIConfigFilePrecedence(t *testing.T) {
	cfgStore := tempStore(t)
	cfgFile := filepath.Join(tempStore(t), "odtools.yaml")
	require.NoError(t, ioutil.WriteFile(cfgFile,
		[]byte(fmt.Sprintf("store: %s\n", cfgStore)), 0600))

	savedEnv, hadEnv := os.LookupEnv("ODTOOLS_CONFIG")
	require.NoError(t, os.Setenv("ODTOOLS_CONFIG", cfgFile))
	defer func() {
		if hadEnv {
			_ = os.Setenv("ODTOOLS_CONFIG", savedEnv)
		} else {
			_ = os.Unsetenv("ODTOOLS_CONFIG")
		}
	}()

	// without --store, the config file supplies the store
	odtoolsFlags.root.store = ""
	_, fatal := runCLI(t, "subject", "add", "--subject", "subj-cfg")
	require.Empty(t, fatal)
	out, fatal := runCLI(t, "subject", "list", "--store", cfgStore)
	require.Empty(t, fatal)
	assert.Contains(t, out, "subj-cfg")

	// an explicit --store wins over the config file
	flagStore := tempStore(t)
	_, fatal = runCLI(t, "subject", "add", "--store", flagStore, "--subject", "subj-flag")
	require.Empty(t, fatal)
	out, fatal = runCLI(t, "subject", "list", "--store", flagStore)
	require.Empty(t, fatal)
	assert.Contains(t, out, "subj-flag")
	out, fatal = runCLI(t, "subject", "list", "--store", cfgStore)
	require.Empty(t, fatal)
	assert.NotContains(t, out, "subj-flag")
}

func seedSession(t *testing.T, dir string) {
	t.Helper()
	for _, toPin := range [][]string{
		{"subject", "add", "--store", dir, "--subject", "subj-001"},
		{"date", "add", "--store", dir, "--subject", "subj-001", "--date", "2020-01-02"},
		{"session", "add", "--store", dir, "--subject", "subj-001", "--date", "2020-01-02", "--session", "1"},
	} {
		args := toPin
		_, fatal := runCLI(t, args...)
		require.Empty(t, fatal, strings.Join(args, " "))
	}
}
