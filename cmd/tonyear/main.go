/*
Copyright © 2021 the tonyear authors.
This file is part of tonyear.

tonyear is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tonyear is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tonyear.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command tonyear is a command-line interface for ton-year carbon
// accounting calculations.
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/tonyear/tonyearutil"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	logrus.SetOutput(os.Stderr)
	tonyearutil.Log = logrus.StandardLogger()
}

func main() {
	if err := tonyearutil.Root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
