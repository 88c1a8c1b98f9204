package fixture

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Load 读取单个 fixture 文件，或目录下所有 .yaml/.yml 文件（按路径排序）；用例名在整个目录内唯一
func Load(path string) ([]*Case, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat fixture path")
	}
	if !info.IsDir() {
		return loadFile(path)
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isFixtureFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk fixture directory %s", path)
	}
	slices.Sort(files)

	var cases []*Case
	sources := make(map[string]string)
	for _, file := range files {
		fileCases, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		for _, c := range fileCases {
			if prev, ok := sources[c.Name]; ok {
				return nil, errors.Errorf("duplicate case name %q in %s and %s", c.Name, prev, file)
			}
			sources[c.Name] = file
		}
		cases = append(cases, fileCases...)
	}
	return cases, nil
}

// Decode 解析 fixture 文档；未知字段视为错误
func Decode(r io.Reader) ([]*Case, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to decode fixtures")
	}

	names := make(map[string]struct{}, len(file.Cases))
	for i, c := range file.Cases {
		if c == nil {
			return nil, errors.Errorf("case %d is empty", i)
		}
		if c.Name == "" {
			return nil, errors.Errorf("case %d has no name", i)
		}
		if _, ok := names[c.Name]; ok {
			return nil, errors.Errorf("duplicate case name %q", c.Name)
		}
		names[c.Name] = struct{}{}
	}
	return file.Cases, nil
}

func loadFile(path string) ([]*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture file %s", path)
	}

	cases, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	for _, c := range cases {
		c.Source = path
	}

	log.Debug().Str("path", path).Int("cases", len(cases)).Msg("Loaded fixture file")
	return cases, nil
}

func isFixtureFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
