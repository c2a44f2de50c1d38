package engine

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/dump2tsv/internal/testutil"
	"github.com/leapstack-labs/dump2tsv/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTableDump = `-- MySQL dump
/*!40101 SET NAMES utf8mb4 */;

DROP TABLE IF EXISTS ` + "`Competitions`" + `;
CREATE TABLE ` + "`Competitions`" + ` (
  ` + "`id`" + ` varchar(32) NOT NULL DEFAULT '',
  ` + "`name`" + ` varchar(50) NOT NULL DEFAULT '',
  ` + "`year`" + ` int NOT NULL DEFAULT 0,
  PRIMARY KEY (` + "`id`" + `)
);
LOCK TABLES ` + "`Competitions`" + ` WRITE;
INSERT INTO ` + "`Competitions`" + ` VALUES ('Open2019','Open; Summer',2019),('Cup2020','Cup\tTwo',2020);
INSERT INTO ` + "`Competitions`" + ` VALUES ('Bad2021',NULL,-1);
UNLOCK TABLES;

CREATE TABLE ` + "`Results`" + ` (
  ` + "`competitionId`" + ` varchar(32) NOT NULL,
  ` + "`best`" + ` int NOT NULL,
  ` + "`average`" + ` float DEFAULT NULL
);
INSERT INTO ` + "`Results`" + ` VALUES ('Open2019',725,7.5),('Open2019',-1,NULL);
INSERT INTO ` + "`Results`" + ` VALUES ('Cup2020',1000,-2.25);
`

func TestRun_EndToEndWithParser(t *testing.T) {
	e, dir := newTestEngine(t)

	res, err := e.Run(parser.New(strings.NewReader(twoTableDump)))
	require.NoError(t, err)

	assert.Equal(t,
		"id\tname\tyear\t\n"+
			"Open2019\tOpen; Summer\t2019\t\n"+
			"Cup2020\tCup\\tTwo\t2020\t\n"+
			"Bad2021\tnull\t-1\t\n",
		readTable(t, dir, "Competitions"))

	assert.Equal(t,
		"competitionId\tbest\taverage\t\n"+
			"Open2019\t725\t7.5\t\n"+
			"Open2019\t-1\tnull\t\n"+
			"Cup2020\t1000\t-2.25\t\n",
		readTable(t, dir, "Results"))

	require.Len(t, res.Tables, 2)
	assert.Equal(t, "Competitions", res.Tables[0].Name)
	assert.Equal(t, int64(3), res.Tables[0].Rows)
	assert.Equal(t, "Results", res.Tables[1].Name)
	assert.Equal(t, int64(3), res.Tables[1].Rows)
	assert.Equal(t, int64(6), res.Rows)
	assert.Equal(t, 4, res.Inserts)
}

func TestRun_SyntaxErrorFromParser(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	e := New(Config{OutputDir: t.TempDir(), Logger: logger})

	dump := "CREATE TABLE t (a int);\nINSERT INTO t VALUES (1);\nINSERT INTO t VALUES (2,,3);\nINSERT INTO t VALUES (4);\n"
	_, err := e.Run(parser.New(strings.NewReader(dump)))

	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 3, synErr.Pos.Line)
	assert.Equal(t, "a\t\n1\t\n", readTable(t, e.OutputDir(), "t"))
}
