/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/andreas-jonsson/emu8086/version"
)

const (
	defaultVersion = "0.1.0.0"
	startYear      = 2019
	copyrightFmt   = "Copyright (c) %v Andreas T Jonsson"
)

func main() {
	file := flag.String("file", "-", "Save the generated output to file.")
	pkg := flag.String("package", "version", "Package name of the generated output.")
	env := flag.String("variable", "EMU8086_VERSION", "Environment variable containing the version number.")
	flag.Parse()

	var hash string
	if res, err := exec.Command("git", "rev-parse", "HEAD").Output(); err != nil {
		log.Print("could not parse Git hash: ", err)
	} else {
		hash = strings.TrimSpace(string(res))
	}

	str := os.Getenv(*env)
	if str == "" {
		str = defaultVersion
		log.Printf("%s is not set. Defaulting to %s", *env, str)
	}

	v, err := version.Parse(str)
	if err != nil {
		log.Print(err)
		v, _ = version.Parse(defaultVersion)
	}

	fp := os.Stdout
	if *file != "-" {
		os.MkdirAll(path.Dir(*file), 0777)
		if fp, err = os.Create(*file); err != nil {
			log.Panicln(err)
		}
		defer fp.Close()
	}

	if err := render(fp, *pkg, v, hash, time.Now().Year()); err != nil {
		log.Panicln(err)
	}
}

func copyright(year int) string {
	if year == startYear {
		return fmt.Sprintf(copyrightFmt, startYear)
	}
	return fmt.Sprintf(copyrightFmt, fmt.Sprintf("%d-%d", startYear, year))
}

func render(w io.Writer, pkg string, v version.Version, hash string, year int) error {
	values := map[string]interface{}{
		"hash":  hash,
		"major": v.Major,
		"minor": v.Minor,
		"patch": v.Patch,
		"build": v.Build,
		"copy":  copyright(year),
		"pkg":   pkg,
	}
	return template.Must(template.New("version").Parse(content)).Execute(w, values)
}

var content = `/*
{{.copy}}

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package {{.pkg}}

var (
	Current = Version{ {{.major}}, {{.minor}}, {{.patch}}, "{{.build}}" }
	Copyright = "{{.copy}}"
	Hash = "{{.hash}}"
)
`
