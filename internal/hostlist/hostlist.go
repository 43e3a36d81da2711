// Package hostlist loads the ordered host list the core consumes,
// keeping the core itself free of any notion of files, stdin, or YAML:
// reading from a plain file, standard input, or a structured YAML
// document all live here.
package hostlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sshp-go/sshp/engine"
)

// yamlDoc is the optional structured host-list format: a flat list of
// host names under a top-level "hosts" key. Grouped (group -> hosts)
// mappings are not supported.
type yamlDoc struct {
	Hosts []string `yaml:"hosts"`
}

// Load reads an ordered HostList from r. Blank lines and lines whose
// first non-whitespace character is '#' are skipped, mirroring the
// original tool's parse_hosts behavior. Leading/trailing whitespace is
// trimmed from each host name.
func Load(r io.Reader) (engine.HostList, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var hosts engine.HostList
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, engine.Host{Name: line, Display: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read host list: %w", err)
	}
	return hosts, nil
}

// LoadYAML reads an ordered HostList from a YAML document of the form
// `hosts: [a, b, c]`. Order in the document is preserved.
func LoadYAML(r io.Reader) (engine.HostList, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse host list yaml: %w", err)
	}

	hosts := make(engine.HostList, 0, len(doc.Hosts))
	for _, name := range doc.Hosts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		hosts = append(hosts, engine.Host{Name: name, Display: name})
	}
	return hosts, nil
}

// LoadFile opens path and loads it with Load or LoadYAML depending on its
// extension (.yml/.yaml use the structured format). path of "-" reads
// from standard input in the plain format.
func LoadFile(path string) (engine.HostList, error) {
	if path == "-" {
		return Load(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open host list %q: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		return LoadYAML(f)
	}
	return Load(f)
}
