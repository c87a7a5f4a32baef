package cloudgrow

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type UtilsSuite struct {
	tmpDir string
}

var _ = Suite(&UtilsSuite{})

func (s *UtilsSuite) SetUpSuite(c *C) {
	var err error
	s.tmpDir, err = ioutil.TempDir("", "cloudgrow-utils-tests")

	c.Check(err, IsNil)
}

func (s *UtilsSuite) TearDownSuite(c *C) {
	c.Check(os.RemoveAll(s.tmpDir), IsNil)
}

func (s *UtilsSuite) TestNameSuffix(c *C) {
	testdata := []struct {
		Base     string
		i        uint
		Expected string
	}{
		{"out.csv", 0, "out.csv"},
		{"bar.foo.2.csv", 3, "bar.foo.3.csv"},
		{"../some/path/out.42.csv", 2, "../some/path/out.2.csv"},
		{"../some/path/out.42.csv", 0, "../some/path/out.csv"},
	}

	for _, d := range testdata {
		c.Check(filenameWithSuffix(d.Base, d.i), Equals, d.Expected)
	}
}

func (s *UtilsSuite) TestCreateWithoutOverwrite(c *C) {
	files := []string{"out.csv", "out.1.csv", "out.3.csv"}

	for _, f := range files {
		ff, err := os.Create(filepath.Join(s.tmpDir, f))
		c.Assert(err, IsNil)
		defer ff.Close()
	}

	ff, name, err := CreateFileWithoutOverwrite(filepath.Join(s.tmpDir, files[0]))
	c.Check(err, IsNil)
	defer ff.Close()
	c.Assert(name, Equals, filepath.Join(s.tmpDir, "out.2.csv"))
	_, err = os.Stat(name)
	c.Check(err, IsNil)
}

func (s *UtilsSuite) TestVersionCompatibility(c *C) {
	testdata := []struct {
		A, B     string
		Expected bool
	}{
		{"development", "v0.1.0", true},
		{"v0.2.0", "development", true},
		{"v0.2.0", "v0.2.4", true},
		{"v0.2.0", "v0.3.0", false},
		{"v1.2.0", "v1.6.3", true},
		{"v1.2.0", "v2.0.0", false},
	}

	for _, d := range testdata {
		obtained, err := VersionAreCompatible(d.A, d.B)
		c.Check(err, IsNil)
		c.Check(obtained, Equals, d.Expected, Commentf("%s vs %s", d.A, d.B))
	}

	_, err := VersionAreCompatible("not-a-version", "v1.0.0")
	c.Check(err, ErrorMatches, "Invalid version 'not-a-version': .*")
}
