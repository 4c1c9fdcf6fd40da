package blockchain

// HashRegistryABI is the ABI of contracts/HashRegistry.sol.
const HashRegistryABI = `[
  {"type":"function","name":"submitHash","stateMutability":"nonpayable",
   "inputs":[{"name":"hash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"verifyHash","stateMutability":"view",
   "inputs":[{"name":"hash","type":"bytes32"}],
   "outputs":[{"name":"exists","type":"bool"},{"name":"submitter","type":"address"},{"name":"timestamp","type":"uint256"}]},
  {"type":"function","name":"getAllHashes","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"getTotalHashes","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getHashesBySubmitter","stateMutability":"view",
   "inputs":[{"name":"submitter","type":"address"}],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"getRecentHashes","stateMutability":"view",
   "inputs":[{"name":"count","type":"uint256"}],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"event","name":"HashSubmitted","anonymous":false,
   "inputs":[{"name":"hash","type":"bytes32","indexed":true},{"name":"submitter","type":"address","indexed":true},{"name":"timestamp","type":"uint256","indexed":false}]}
]`
