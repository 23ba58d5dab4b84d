// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for contract events, seq encodes (ledger, index)
const eventTableSchema = `
create table if not exists event (
	seq integer primary key not null,
	caller blob(20) not null,
	address blob(20) not null,
	topic0 blob(32),
	topic1 blob(32),
	topic2 blob(32),
	topic3 blob(32),
	data blob
);

CREATE INDEX if not exists eventTopic0Index on event(topic0);
CREATE INDEX if not exists eventTopic1Index on event(topic1);
CREATE INDEX if not exists eventTopic2Index on event(topic2);
`
